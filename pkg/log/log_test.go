package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFields(t *testing.T) {
	appConfig := &config.AppConfig{Version: "1.0.0", Commit: "abc", BuildDate: "today", ConfigDir: t.TempDir()}

	entry := NewLogger(appConfig)

	assert.Equal(t, "1.0.0", entry.Data["version"])
	assert.Equal(t, "abc", entry.Data["commit"])
	assert.Equal(t, false, entry.Data["debug"])
	assert.Equal(t, appConfig.ConfigDir, entry.Data["configDir"])
	assert.NotContains(t, entry.Data, "language")
	assert.Equal(t, logrus.ErrorLevel, entry.Logger.GetLevel())
	assert.NoFileExists(t, LogFilename(appConfig))
}

func TestNewLoggerUserConfigFields(t *testing.T) {
	userConfig := config.GetDefaultConfig()
	userConfig.Language = "pt_BR"
	userConfig.Hashing.Workers = 3
	appConfig := &config.AppConfig{ConfigDir: t.TempDir(), UserConfig: &userConfig}

	entry := NewLogger(appConfig)

	assert.Equal(t, "pt_BR", entry.Data["language"])
	assert.Equal(t, 3, entry.Data["hashWorkers"])
}

func TestNewLoggerDebugFallsBackToStderr(t *testing.T) {
	appConfig := &config.AppConfig{Debug: true, ConfigDir: filepath.Join(t.TempDir(), "missing")}

	entry := NewLogger(appConfig)

	assert.Equal(t, os.Stderr, entry.Logger.Out)
	assert.NoFileExists(t, LogFilename(appConfig))
}

func TestNewLoggerDebugWritesFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	appConfig := &config.AppConfig{Debug: true, ConfigDir: t.TempDir()}

	entry := NewLogger(appConfig)
	entry.Info("hashing started")

	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
	content, err := os.ReadFile(LogFilename(appConfig))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hashing started"`)
	assert.Contains(t, string(content), `"debug":true`)
}

func TestGetLogLevel(t *testing.T) {
	scenarios := []struct {
		env      string
		expected logrus.Level
	}{
		{"", logrus.DebugLevel},
		{"nonsense", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}

	for _, s := range scenarios {
		t.Setenv("LOG_LEVEL", s.env)
		assert.Equal(t, s.expected, getLogLevel())
	}
}
