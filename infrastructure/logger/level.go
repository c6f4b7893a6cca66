package logger

import "strings"

// Level is the level at which a logger is configured. All messages sent
// to a level which is below the current level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelTags are the tags of the levels in log entries, indexed by level
var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// levelsByName maps every accepted spelling of a level, lower case, to
// the level. Both the full name and the tag are accepted.
var levelsByName = func() map[string]Level {
	names := [...]string{"trace", "debug", "info", "warn", "error", "critical", "off"}
	levels := make(map[string]Level, 2*len(names))
	for i, name := range names {
		levels[name] = Level(i)
		levels[strings.ToLower(levelTags[i])] = Level(i)
	}
	return levels
}()

// LevelFromString returns the level named s, ignoring case. If s names
// no level, LevelInfo and false are returned.
func LevelFromString(s string) (l Level, ok bool) {
	level, ok := levelsByName[strings.ToLower(s)]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

// String returns the tag of the level used in log entries, or "OFF" if
// the level will not produce any log output.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levelTags[l]
}
