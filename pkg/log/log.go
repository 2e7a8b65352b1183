package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger tagged with the build and the settings that
// shape a run. Only --debug writes anything, to debug.log in the config dir.
func NewLogger(config *config.AppConfig) *logrus.Entry {
	var log *logrus.Logger
	if config.Debug {
		log = newDebugLogger(config)
	} else {
		log = newQuietLogger()
	}

	log.Formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}

	fields := logrus.Fields{
		"debug":     config.Debug,
		"version":   config.Version,
		"commit":    config.Commit,
		"buildDate": config.BuildDate,
		"configDir": config.ConfigDir,
		"os":        runtime.GOOS,
	}
	if config.UserConfig != nil {
		fields["language"] = config.UserConfig.Language
		fields["hashWorkers"] = config.UserConfig.Hashing.Workers
	}
	return log.WithFields(fields)
}

// LogFilename is where debug logs go
func LogFilename(config *config.AppConfig) string {
	return filepath.Join(config.ConfigDir, "debug.log")
}

func getLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

// newDebugLogger appends to the log file, or writes to stderr when the file
// can't be opened
func newDebugLogger(config *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(getLogLevel())
	file, err := os.OpenFile(LogFilename(config), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to log to %s, logging to stderr\n", LogFilename(config))
		log.SetOutput(os.Stderr)
		return log
	}
	log.SetOutput(file)
	return log
}

func newQuietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.ErrorLevel)
	return log
}
