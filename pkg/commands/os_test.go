package commands

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOSCommandRunCommandContextKillsOnCancel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	before := time.Now()
	err := NewDummyOSCommand().RunCommandContext(ctx, "sleep 10")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(before), 5*time.Second)
}

func TestOSCommandRunCommandContextReportsStderr(t *testing.T) {
	err := NewDummyOSCommand().RunCommandContext(context.Background(), "rmdir unexisting-folder")
	assert.Regexp(t, "rmdir.*unexisting-folder.*", err.Error())
}

func TestOSCommandOpenLink(t *testing.T) {
	type scenario struct {
		name         string
		template     string
		link         string
		expectedName string
		expectedArgs []string
	}

	scenarios := []scenario{
		{
			name:         "xdg-open",
			template:     "xdg-open {{link}}",
			link:         "https://example.com/a b",
			expectedName: "xdg-open",
			expectedArgs: []string{"https://example.com/a b"},
		},
		{
			name:         "link with a dollar sign",
			template:     "open -a Firefox {{link}}",
			link:         "https://example.com/?price=$5",
			expectedName: "open",
			expectedArgs: []string{"-a", "Firefox", "https://example.com/?price=$5"},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			osCommand := NewDummyOSCommand()
			osCommand.Platform.os = "linux"
			osCommand.Config.UserConfig.OS.OpenLinkCommand = s.template

			osCommand.SetCommand(func(name string, args ...string) *exec.Cmd {
				assert.Equal(t, s.expectedName, name)
				assert.Equal(t, s.expectedArgs, args)
				return exec.Command("echo")
			})

			assert.NoError(t, osCommand.OpenLink(context.Background(), s.link))
		})
	}
}

func TestOSCommandQuote(t *testing.T) {
	osCommand := NewDummyOSCommand()

	osCommand.Platform.os = "linux"

	actual := osCommand.Quote("hello `test`")

	expected := "\"hello \\`test\\`\""

	assert.EqualValues(t, expected, actual)
}

// TestOSCommandQuoteSingleQuote tests the quote function with ' quotes explicitly for Linux
func TestOSCommandQuoteSingleQuote(t *testing.T) {
	osCommand := NewDummyOSCommand()

	osCommand.Platform.os = "linux"

	actual := osCommand.Quote("hello 'test'")

	expected := `"hello 'test'"`

	assert.EqualValues(t, expected, actual)
}

// TestOSCommandQuoteDoubleQuote tests the quote function with " quotes explicitly for Linux
func TestOSCommandQuoteDoubleQuote(t *testing.T) {
	osCommand := NewDummyOSCommand()

	osCommand.Platform.os = "linux"

	actual := osCommand.Quote(`hello "test"`)

	expected := `"hello \"test\""`

	assert.EqualValues(t, expected, actual)
}

// TestOSCommandQuoteWindows tests the quote function for Windows
func TestOSCommandQuoteWindows(t *testing.T) {
	osCommand := NewDummyOSCommand()

	osCommand.Platform.os = "windows"

	actual := osCommand.Quote(`hello "test" 'test2'`)

	expected := `\"hello "'"'"test"'"'" 'test2'\"`

	assert.EqualValues(t, expected, actual)
}

// TestOSCommandFileType is a function.
func TestOSCommandFileType(t *testing.T) {
	dir := t.TempDir()

	type scenario struct {
		path  string
		setup func(path string)
		test  func(string)
	}

	scenarios := []scenario{
		{
			"testFile",
			func(path string) {
				assert.NoError(t, os.WriteFile(path, nil, 0o644))
			},
			func(output string) {
				assert.EqualValues(t, "file", output)
			},
		},
		{
			"file with spaces",
			func(path string) {
				assert.NoError(t, os.WriteFile(path, nil, 0o644))
			},
			func(output string) {
				assert.EqualValues(t, "file", output)
			},
		},
		{
			"testDirectory",
			func(path string) {
				assert.NoError(t, os.Mkdir(path, 0o755))
			},
			func(output string) {
				assert.EqualValues(t, "directory", output)
			},
		},
		{
			"nonExistant",
			func(string) {},
			func(output string) {
				assert.EqualValues(t, "other", output)
			},
		},
	}

	for _, s := range scenarios {
		path := filepath.Join(dir, s.path)
		s.setup(path)
		s.test(NewDummyOSCommand().FileType(path))
	}
}

func TestOSCommandFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.torrent")
	osCommand := NewDummyOSCommand()

	exists, err := osCommand.FileExists(path)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, os.WriteFile(path, []byte("de"), 0o644))
	exists, err = osCommand.FileExists(path)
	assert.NoError(t, err)
	assert.True(t, exists)
}
