package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/commands"
	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/log"
	"github.com/jesseduffield/lazytorrent/pkg/presentation"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// App struct
type App struct {
	closers []io.Closer

	Config         *config.AppConfig
	Log            *logrus.Entry
	OSCommand      *commands.OSCommand
	TorrentCommand *commands.TorrentCommand
	CatalogCommand *commands.CatalogCommand
	Tr             *i18n.Localizer

	// Out receives the rendered results, ErrOut progress and notices
	Out    io.Writer
	ErrOut io.Writer
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  config,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
	}
	app.Log = log.NewLogger(config)

	var err error
	app.Tr, err = i18n.NewLocalizerFromConfig(app.Log, config.UserConfig.Language)
	if err != nil {
		// the localizer is English at this point, which is fine to carry on with
		app.Log.Warn(err.Error())
	}

	app.OSCommand = commands.NewOSCommand(app.Log, config)
	app.TorrentCommand = commands.NewTorrentCommand(app.Log, app.OSCommand, app.Tr, config)
	app.closers = append(app.closers, app.TorrentCommand)
	app.CatalogCommand = commands.NewCatalogCommand(app.Log, app.Tr)

	return app, nil
}

func (app *App) Close() error {
	return utils.CloseMany(app.closers)
}

func (app *App) println(w io.Writer, str string) {
	fmt.Fprintln(w, str)
}

// Show prints the main info of a torrent
func (app *App) Show(path string) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}
	out, err := presentation.RenderMainInfo(model, &app.Tr.S)
	if err != nil {
		return err
	}
	app.println(app.Out, out)
	app.warnOnMissingPieces(model)
	return nil
}

// warnOnMissingPieces tells the user when the piece hashes don't cover the
// files, which makes the torrent unusable for downloading
func (app *App) warnOnMissingPieces(model *torrent.Model) {
	if err := app.TorrentCommand.CheckPieces(model); err != nil {
		message, _ := app.KnownError(err)
		app.println(app.ErrOut, fmt.Sprintf("%s: %s", app.Tr.S.Warning, message))
	}
}

// Tree prints every item of a torrent with its type and value
func (app *App) Tree(path string) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}
	out, err := presentation.RenderTree(model, &app.Tr.S)
	if err != nil {
		return err
	}
	app.println(app.Out, out)
	return nil
}

// FilesOptions narrow down and order the files table
type FilesOptions struct {
	Mode       torrent.FilterMode
	Pattern    string
	SortBySize bool
}

// Files prints the files of a torrent that the filter selects, followed by
// their total size
func (app *App) Files(path string, options FilesOptions) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}

	filter := torrent.NewFileFilter(model.Files())
	if err := filter.Apply(options.Mode, options.Pattern); err != nil {
		return err
	}
	if options.SortBySize {
		filter.SortBySize()
	}

	out, err := presentation.RenderFiles(filter.Files(), &app.Tr.S)
	if err != nil {
		return err
	}
	if out != "" {
		app.println(app.Out, out)
	}
	app.println(app.Out, fmt.Sprintf("%s: %s", app.Tr.S.TotalSize, presentation.FormatSize(filter.TotalSize(), &app.Tr.S)))
	return nil
}

func (app *App) ToJSON(src string, dest string) error {
	return app.TorrentCommand.ConvertToJSON(src, dest)
}

func (app *App) FromJSON(src string, dest string) error {
	return app.TorrentCommand.ConvertFromJSON(src, dest)
}

// Edit changes a torrent and writes it to output, or back to path when
// output is empty
func (app *App) Edit(ctx context.Context, path string, options commands.EditOptions, output string) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}
	if err := app.TorrentCommand.Edit(ctx, model, options); err != nil {
		return err
	}
	app.warnOnMissingPieces(model)
	return app.save(model, lo.Ternary(output == "", path, output))
}

// Create hashes the given files and writes the torrent to output, which
// defaults to <name>.torrent in the working directory. An existing output is
// only replaced when force is set.
func (app *App) Create(ctx context.Context, paths []string, options commands.CreateOptions, output string, force bool) error {
	if output != "" && !force {
		if err := app.checkNotExists(output); err != nil {
			return err
		}
	}

	if options.OnProgress == nil {
		options.OnProgress = func(progress torrent.Progress) {
			fmt.Fprintf(app.ErrOut, "\r%s", presentation.FormatProgress(progress, &app.Tr.S))
		}
	}

	model, err := app.TorrentCommand.Create(ctx, paths, options)
	if err != nil {
		return err
	}
	app.println(app.ErrOut, "")

	if output == "" {
		output = model.Name() + ".torrent"
		if !force {
			if err := app.checkNotExists(output); err != nil {
				return err
			}
		}
	}
	return app.save(model, output)
}

func (app *App) checkNotExists(path string) error {
	exists, err := app.OSCommand.FileExists(path)
	if err != nil {
		return commands.WrapError(err)
	}
	if exists {
		return errors.New(i18n.Arg(app.Tr.S.FileAlreadyExists, path))
	}
	return nil
}

// Search prints the matching items and, when replacing, saves the result
// to output or back to path
func (app *App) Search(path string, options commands.SearchOptions, output string) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}

	result, err := app.TorrentCommand.Search(model, options)
	if err != nil {
		return err
	}

	if options.Replace == nil {
		matches, err := presentation.RenderMatches(model, result.Matches)
		if err != nil {
			return err
		}
		if matches != "" {
			app.println(app.Out, matches)
		}
	}
	app.println(app.ErrOut, result.Status)

	if result.Replaced == 0 {
		return nil
	}
	return app.save(model, lo.Ternary(output == "", path, output))
}

// Diff prints a unified diff of the JSON forms of two torrents
func (app *App) Diff(a string, b string) error {
	modelA, err := app.TorrentCommand.Open(a)
	if err != nil {
		return err
	}
	modelB, err := app.TorrentCommand.Open(b)
	if err != nil {
		return err
	}

	diff, err := app.TorrentCommand.Diff(modelA, a, modelB, b)
	if err != nil {
		return err
	}
	if diff == "" {
		app.println(app.ErrOut, app.Tr.S.NoDifferences)
		return nil
	}
	fmt.Fprint(app.Out, diff)
	return nil
}

// ErrCatalogIssues is returned by Lint once the reports are printed, so the
// caller can exit with a failure status
var ErrCatalogIssues = errors.New("translation catalogs have issues")

// Lint validates translation catalogs, the embedded ones when no paths are
// given
func (app *App) Lint(paths []string) error {
	reports, err := app.CatalogCommand.Lint(paths)
	if err != nil {
		return err
	}

	clean := true
	for _, report := range reports {
		app.println(app.Out, app.CatalogCommand.Summary(report))
		for _, issue := range report.Issues {
			app.println(app.Out, "  "+issue.String())
		}
		if report.Diff != "" {
			fmt.Fprint(app.Out, report.Diff)
		}
		clean = clean && report.Clean()
	}
	if !clean {
		return ErrCatalogIssues
	}
	return nil
}

// SetLanguage stores the language of messages in the user config, so it
// applies to later runs without --language
func (app *App) SetLanguage(lang string) error {
	matched, ok := i18n.MatchLanguage(lang)
	if lang == "auto" {
		matched, ok = lang, true
	}
	if !ok {
		return errors.New(i18n.Arg(app.Tr.S.LanguageNotFound, lang))
	}

	err := app.Config.WriteToUserConfig(func(userConfig *config.UserConfig) error {
		userConfig.Language = matched
		return nil
	})
	if err != nil {
		return err
	}
	app.Config.UserConfig.Language = matched
	app.Log.Infof("language set to %s", matched)
	app.println(app.ErrOut, i18n.Arg(app.Tr.S.LanguageSaved, matched, app.Config.ConfigFilename()))
	return nil
}

// OpenURL opens the publisher url of a torrent
func (app *App) OpenURL(ctx context.Context, path string) error {
	model, err := app.TorrentCommand.Open(path)
	if err != nil {
		return err
	}
	return app.TorrentCommand.OpenURL(ctx, model)
}

func (app *App) save(model *torrent.Model, path string) error {
	if err := app.TorrentCommand.Save(model, path); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	app.println(app.ErrOut, i18n.Arg(app.Tr.S.Saved, abs))
	return nil
}

type errorMapping struct {
	originalError string
	newError      string
}

// KnownError takes an error and tells us whether it's an error that we know about where we can print a nicely formatted version of it rather than panicking with a stack trace
func (app *App) KnownError(err error) (string, bool) {
	tr := app.Tr.S

	codeMessages := map[int]func(message string) string{
		commands.SourceMissing: func(message string) string { return message },
		commands.InvalidBencode: func(message string) string {
			if strings.HasPrefix(message, tr.BencodedDataNotValid) {
				return message
			}
			return tr.BencodedDataNotValid + ": " + message
		},
		commands.InvalidJSON:          func(message string) string { return message },
		commands.RootNotSet:           func(string) string { return tr.RootNotSet },
		commands.RootIsFilesystemRoot: func(string) string { return tr.RootIsFilesystemRoot },
		commands.RootNotCommon:        func(string) string { return tr.RootNotCommon },
		commands.PiecesMissing:        func(string) string { return tr.NeedToCalculatePieceHashes },
	}

	var complexErr commands.ComplexError
	if errors.As(err, &complexErr) {
		if message, ok := codeMessages[complexErr.Code]; ok {
			return message(complexErr.Message), true
		}
	}

	errorMessage := err.Error()

	mappings := []errorMapping{
		{originalError: tr.HashingCancelled, newError: tr.HashingCancelled},
		{originalError: tr.NoPublisherURL, newError: tr.NoPublisherURL},
		{originalError: tr.RootCannotBeChanged, newError: tr.RootCannotBeChanged},
		{originalError: strings.SplitN(tr.LanguageNotFound, "%1", 2)[0], newError: errorMessage},
		{originalError: strings.SplitN(tr.FileAlreadyExists, "%1", 2)[1], newError: errorMessage},
		{originalError: strings.SplitN(tr.PathNotFound, "%1", 2)[0], newError: errorMessage},
		{originalError: strings.SplitN(tr.InvalidAssignment, "%1", 2)[0], newError: errorMessage},
		{originalError: strings.SplitN(tr.MissingArgument, "%1", 2)[0], newError: errorMessage},
	}

	for _, mapping := range mappings {
		if mapping.originalError != "" && strings.Contains(errorMessage, mapping.originalError) {
			return mapping.newError, true
		}
	}

	return "", false
}
