package commands

import (
	"io"

	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/tasks"
	"github.com/sirupsen/logrus"
)

// This file exports dummy constructors for use by tests in other packages

// NewDummyOSCommand creates a new dummy OSCommand for testing
func NewDummyOSCommand() *OSCommand {
	return NewOSCommand(NewDummyLog(), NewDummyAppConfig())
}

// NewDummyAppConfig creates a new dummy AppConfig for testing
func NewDummyAppConfig() *config.AppConfig {
	userConfig := config.GetDefaultConfig()
	userConfig.Language = i18n.EN

	appConfig := &config.AppConfig{
		Name:        "lazytorrent",
		Version:     "unversioned",
		Commit:      "",
		BuildDate:   "",
		Debug:       false,
		BuildSource: "",
		UserConfig:  &userConfig,
	}
	return appConfig
}

// NewDummyLog creates a new dummy Log for testing
func NewDummyLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

// NewDummyLocalizer creates a new English Localizer for testing
func NewDummyLocalizer() *i18n.Localizer {
	return i18n.NewLocalizer(NewDummyLog(), i18n.EN)
}

// NewDummyTorrentCommand creates a new dummy TorrentCommand for testing
func NewDummyTorrentCommand() *TorrentCommand {
	return NewDummyTorrentCommandWithOSCommand(NewDummyOSCommand())
}

// NewDummyTorrentCommandWithOSCommand creates a new dummy TorrentCommand for testing
func NewDummyTorrentCommandWithOSCommand(osCommand *OSCommand) *TorrentCommand {
	log := NewDummyLog()
	tr := NewDummyLocalizer()
	return &TorrentCommand{
		Log:         log,
		OSCommand:   osCommand,
		Tr:          tr,
		Config:      osCommand.Config,
		TaskManager: tasks.NewTaskManager(log, &tr.S),
	}
}
