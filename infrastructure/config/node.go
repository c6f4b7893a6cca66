package config

import (
	"os"
	"path/filepath"

	"github.com/kaspanet/wsvd/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultAppDirName     = ".wsvd"
	defaultDataDirName    = "data"
	defaultLogDirName     = "logs"
	defaultLogFilename    = "wsvd.log"
	defaultErrLogFilename = "wsvd_err.log"
	defaultLogLevel       = "info"
	defaultCacheSizeMiB   = 16
)

// NodeFlags holds the configuration shared by every command that opens
// the world state view database
type NodeFlags struct {
	AppDir       string `long:"appdir" short:"b" description:"Directory to store data and logs"`
	LogLevel     string `long:"loglevel" short:"d" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	CacheSizeMiB int    `long:"cachesize" description:"LevelDB cache size in MiB"`
	NoLogFiles   bool   `long:"nologfiles" description:"Log to stdout only"`
}

// DefaultAppDir returns the default application directory, under the
// home directory of the current user
func DefaultAppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultAppDirName
	}
	return filepath.Join(homeDir, defaultAppDirName)
}

// ResolveNode fills in the defaults of unset flags, validates them and
// creates the application directories
func (nodeFlags *NodeFlags) ResolveNode() error {
	if nodeFlags.AppDir == "" {
		nodeFlags.AppDir = DefaultAppDir()
	}
	if nodeFlags.LogLevel == "" {
		nodeFlags.LogLevel = defaultLogLevel
	}
	if nodeFlags.CacheSizeMiB == 0 {
		nodeFlags.CacheSizeMiB = defaultCacheSizeMiB
	}
	if nodeFlags.CacheSizeMiB < 0 {
		return errors.Errorf("cachesize must be positive, got %d", nodeFlags.CacheSizeMiB)
	}

	err := logger.ParseAndSetLogLevels(nodeFlags.LogLevel)
	if err != nil {
		return err
	}
	for _, dir := range []string{nodeFlags.DataDir(), nodeFlags.LogDir()} {
		err := os.MkdirAll(dir, 0700)
		if err != nil {
			return errors.Wrapf(err, "error creating directory %s", dir)
		}
	}
	return nil
}

// DataDir returns the directory of the world state view database
func (nodeFlags *NodeFlags) DataDir() string {
	return filepath.Join(nodeFlags.AppDir, defaultDataDirName)
}

// LogDir returns the directory of the log files
func (nodeFlags *NodeFlags) LogDir() string {
	return filepath.Join(nodeFlags.AppDir, defaultLogDirName)
}

// InitLog starts the logging backend, writing to stdout and, unless
// NoLogFiles is set, to rotated log files in LogDir
func (nodeFlags *NodeFlags) InitLog() error {
	if nodeFlags.NoLogFiles {
		err := logger.BackendLog.AddLogWriter(os.Stdout, logger.LevelInfo)
		if err != nil {
			return err
		}
		return logger.BackendLog.Run()
	}
	logger.InitLog(filepath.Join(nodeFlags.LogDir(), defaultLogFilename),
		filepath.Join(nodeFlags.LogDir(), defaultErrLogFilename))
	return nil
}
