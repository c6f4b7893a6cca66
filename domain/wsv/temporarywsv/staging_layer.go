package temporarywsv

import (
	"sort"

	"github.com/kaspanet/wsvd/infrastructure/db/database"
)

type stagedEntry struct {
	key       *database.Key
	value     []byte
	isDeleted bool
}

// stagingLayer holds puts and deletes keyed by their full database key
type stagingLayer struct {
	entries map[string]*stagedEntry
}

func newStagingLayer() *stagingLayer {
	return &stagingLayer{entries: make(map[string]*stagedEntry)}
}

func (sl *stagingLayer) put(key *database.Key, value []byte) {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	sl.entries[string(key.Bytes())] = &stagedEntry{key: key, value: valueCopy}
}

func (sl *stagingLayer) delete(key *database.Key) {
	sl.entries[string(key.Bytes())] = &stagedEntry{key: key, isDeleted: true}
}

func (sl *stagingLayer) get(key []byte) (*stagedEntry, bool) {
	entry, ok := sl.entries[string(key)]
	return entry, ok
}

// mergeInto moves every entry of sl into other, overriding the entries
// of other
func (sl *stagingLayer) mergeInto(other *stagingLayer) {
	for key, entry := range sl.entries {
		other.entries[key] = entry
	}
}

func (sl *stagingLayer) sortedKeys() []string {
	keys := make([]string, 0, len(sl.entries))
	for key := range sl.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
