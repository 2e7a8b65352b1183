package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/lazytorrent/pkg/app"
	"github.com/jesseduffield/lazytorrent/pkg/commands"
	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/jesseduffield/lazytorrent/pkg/search"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
)

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	languageFlag  = ""
	toJSONFlag    = ""
	fromJSONFlag  = ""
)

type cli struct {
	show, tree, files, toJSON, fromJSON, edit, create, search, diff, lint, openURL, language *flaggy.Subcommand

	torrentPath string
	src, dest   string
	otherPath   string
	createPath  string
	catalogPath string
	output      string
	force       bool
	lang        string

	name, comment, publisher, url, createdBy, date string
	trackers                                       []string
	private                                        bool
	pieceSize                                      int64
	root                                           string
	set, rename, remove                            []string

	filter, filterMode string
	sortBySize         bool

	find, replace                       string
	matchCase, exact, wildcards, regexp bool
	keys, values, hex, up, replaceHex   bool
}

func newPathCommand(name string, description string, path *string) *flaggy.Subcommand {
	sc := flaggy.NewSubcommand(name)
	sc.Description = description
	sc.AddPositionalValue(path, "torrent", 1, true, "The torrent file")
	flaggy.AttachSubcommand(sc, 1)
	return sc
}

func newConvertCommand(name string, description string, c *cli) *flaggy.Subcommand {
	sc := flaggy.NewSubcommand(name)
	sc.Description = description
	sc.AddPositionalValue(&c.src, "src", 1, true, "The file to convert")
	sc.AddPositionalValue(&c.dest, "dest", 2, true, "Where to write the result")
	flaggy.AttachSubcommand(sc, 1)
	return sc
}

func (c *cli) define() {
	c.show = newPathCommand("show", "Print the main info of a torrent", &c.torrentPath)
	c.tree = newPathCommand("tree", "Print every item of a torrent", &c.torrentPath)
	c.files = newPathCommand("files", "List the files of a torrent", &c.torrentPath)
	c.files.String(&c.filter, "f", "filter", "Only list files matching this pattern")
	c.files.String(&c.filterMode, "m", "mode", "How to read the filter: name, extension, wildcards or regexp")
	c.files.Bool(&c.sortBySize, "s", "sort-size", "List the largest files first")

	c.openURL = newPathCommand("open-url", "Open the publisher url of a torrent in the browser", &c.torrentPath)
	c.toJSON = newConvertCommand("to-json", "Convert a torrent to JSON", c)
	c.fromJSON = newConvertCommand("from-json", "Convert JSON to a torrent", c)

	c.edit = newPathCommand("edit", "Change a torrent", &c.torrentPath)
	c.edit.String(&c.name, "", "name", "Torrent name")
	c.edit.String(&c.comment, "", "comment", "Comment")
	c.edit.String(&c.publisher, "", "publisher", "Publisher")
	c.edit.String(&c.url, "", "url", "Publisher url")
	c.edit.String(&c.createdBy, "", "created-by", "Created by")
	c.edit.String(&c.date, "", "date", "Creation date: now, unix seconds, RFC 3339 or 2006-01-02 15:04:05. Empty removes it")
	c.edit.StringSlice(&c.trackers, "t", "tracker", "Tracker url, replaces every tracker")
	c.edit.Bool(&c.private, "", "private", "Mark the torrent private")
	c.edit.Int64(&c.pieceSize, "", "piece-size", "Piece size in bytes, needs --root to rehash")
	c.edit.String(&c.root, "", "root", "Folder holding the torrent's files")
	c.edit.StringSlice(&c.set, "", "set", "Set a tree value: path=value")
	c.edit.StringSlice(&c.rename, "", "rename", "Rename a dictionary key: path=key")
	c.edit.StringSlice(&c.remove, "", "delete", "Remove a tree item")
	c.edit.String(&c.output, "o", "output", "Write to this file instead of the torrent")

	c.create = flaggy.NewSubcommand("create")
	c.create.Description = "Create a torrent from a folder, or from files given after -- sharing a parent folder"
	c.create.AddPositionalValue(&c.createPath, "folder", 1, true, "The folder or file to share")
	c.create.String(&c.name, "", "name", "Torrent name")
	c.create.String(&c.comment, "", "comment", "Comment")
	c.create.StringSlice(&c.trackers, "t", "tracker", "Tracker url")
	c.create.Bool(&c.private, "", "private", "Mark the torrent private")
	c.create.Int64(&c.pieceSize, "", "piece-size", "Piece size in bytes, 0 picks one from the total size")
	c.create.String(&c.output, "o", "output", "Torrent file to write")
	c.create.Bool(&c.force, "", "force", "Overwrite the output file if it exists")
	flaggy.AttachSubcommand(c.create, 1)

	c.search = newPathCommand("search", "Find and replace keys or values", &c.torrentPath)
	c.search.String(&c.find, "f", "find", "Text to find")
	c.search.String(&c.replace, "r", "replace", "Replace every match with this value")
	c.search.Bool(&c.matchCase, "", "match-case", "Match case")
	c.search.Bool(&c.exact, "", "exact", "Match the whole key or value")
	c.search.Bool(&c.wildcards, "", "wildcards", "Use * and ? wildcards")
	c.search.Bool(&c.regexp, "", "regexp", "Use a regular expression")
	c.search.Bool(&c.keys, "", "keys", "Search keys")
	c.search.Bool(&c.values, "", "values", "Search values")
	c.search.Bool(&c.hex, "", "hex", "Compare string values by their hex digits")
	c.search.Bool(&c.replaceHex, "", "replace-hex", "The replacement is hex encoded")
	c.search.Bool(&c.up, "", "up", "List matches from the bottom")
	c.search.String(&c.output, "o", "output", "Write to this file instead of the torrent")

	c.diff = newPathCommand("diff", "Diff the JSON forms of two torrents", &c.torrentPath)
	c.diff.AddPositionalValue(&c.otherPath, "other", 2, true, "The torrent to compare with")

	c.lint = flaggy.NewSubcommand("lint")
	c.lint.Description = "Validate translation catalogs, the embedded ones when no file is given. More files may follow --"
	c.lint.AddPositionalValue(&c.catalogPath, "catalog", 1, false, "A .ts catalog")
	flaggy.AttachSubcommand(c.lint, 1)

	c.language = flaggy.NewSubcommand("language")
	c.language.Description = "Save the language of the messages in the config, e.g. de, pt_BR or auto"
	c.language.AddPositionalValue(&c.lang, "language", 1, true, "The language")
	flaggy.AttachSubcommand(c.language, 1)
}

func (c *cli) editOptions() commands.EditOptions {
	options := commands.EditOptions{
		Trackers:  c.trackers,
		PieceSize: c.pieceSize,
		Root:      c.root,
		Set:       c.set,
		Rename:    c.rename,
		Delete:    c.remove,
	}
	for _, field := range []struct {
		flag   string
		value  string
		target **string
	}{
		{"name", c.name, &options.Name},
		{"comment", c.comment, &options.Comment},
		{"publisher", c.publisher, &options.Publisher},
		{"url", c.url, &options.URL},
		{"created-by", c.createdBy, &options.CreatedBy},
		{"date", c.date, &options.CreationDate},
	} {
		if isFlagSet(field.flag) {
			value := field.value
			*field.target = &value
		}
	}
	if isFlagSet("private") {
		options.Private = &c.private
	}
	return options
}

func (c *cli) searchOptions() commands.SearchOptions {
	options := commands.SearchOptions{
		Options: search.Options{
			Text:      c.find,
			MatchCase: c.matchCase,
			Exact:     c.exact,
			Keys:      c.keys,
			Values:    c.values,
			Hex:       c.hex,
		},
		ReplaceHex: c.replaceHex,
	}
	switch {
	case c.regexp:
		options.Syntax = search.RegExp
	case c.wildcards:
		options.Syntax = search.Wildcards
	}
	if c.up {
		options.Direction = search.Up
	}
	if isFlagSet("replace") || isFlagSet("r") {
		options.Replace = &c.replace
	}
	return options
}

// isFlagSet tells whether a flag was given, so that an empty value can be
// told apart from a missing one
func isFlagSet(name string) bool {
	for _, arg := range os.Args[1:] {
		if arg == "--" {
			return false
		}
		flag := strings.TrimLeft(arg, "-")
		if flag != arg && (flag == name || strings.HasPrefix(flag, name+"=")) {
			return true
		}
	}
	return false
}

// convertDest is the file after -- or src with its extension replaced
func convertDest(src string, ext string) string {
	if len(flaggy.TrailingArguments) > 0 {
		return flaggy.TrailingArguments[0]
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + ext
}

func (c *cli) run(ctx context.Context, a *app.App) error {
	switch {
	case c.show.Used:
		return a.Show(c.torrentPath)
	case c.tree.Used:
		return a.Tree(c.torrentPath)
	case c.files.Used:
		mode := torrent.FilterName
		if c.filterMode != "" {
			var err error
			if mode, err = torrent.ParseFilterMode(c.filterMode); err != nil {
				return err
			}
		}
		return a.Files(c.torrentPath, app.FilesOptions{Mode: mode, Pattern: c.filter, SortBySize: c.sortBySize})
	case c.toJSON.Used:
		return a.ToJSON(c.src, c.dest)
	case c.fromJSON.Used:
		return a.FromJSON(c.src, c.dest)
	case toJSONFlag != "":
		return a.ToJSON(toJSONFlag, convertDest(toJSONFlag, ".json"))
	case fromJSONFlag != "":
		return a.FromJSON(fromJSONFlag, convertDest(fromJSONFlag, ".torrent"))
	case c.edit.Used:
		return a.Edit(ctx, c.torrentPath, c.editOptions(), c.output)
	case c.create.Used:
		return a.Create(ctx, append([]string{c.createPath}, flaggy.TrailingArguments...), commands.CreateOptions{
			Name:      c.name,
			Comment:   c.comment,
			PieceSize: c.pieceSize,
			Trackers:  c.trackers,
			Private:   c.private,
		}, c.output, c.force)
	case c.search.Used:
		return a.Search(c.torrentPath, c.searchOptions(), c.output)
	case c.diff.Used:
		return a.Diff(c.torrentPath, c.otherPath)
	case c.lint.Used:
		paths := flaggy.TrailingArguments
		if c.catalogPath != "" {
			paths = append([]string{c.catalogPath}, paths...)
		}
		return a.Lint(paths)
	case c.openURL.Used:
		return a.OpenURL(ctx, c.torrentPath)
	case c.language.Used:
		return a.SetLanguage(c.lang)
	}

	flaggy.ShowHelpAndExit("")
	return nil
}

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("lazytorrent")
	flaggy.SetDescription("The lazier way to edit torrent files")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/jesseduffield/lazytorrent"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.String(&languageFlag, "l", "language", "Language of the messages, e.g. de or pt_BR")
	flaggy.String(&toJSONFlag, "", "to-json", "Convert a torrent to JSON, written next to it or to the file after --")
	flaggy.String(&fromJSONFlag, "", "from-json", "Convert JSON to a torrent, written next to it or to the file after --")
	flaggy.SetVersion(info)

	c := &cli{}
	c.define()

	flaggy.Parse()

	if configFlag {
		defaultConfig, err := config.DefaultConfigYAML()
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", defaultConfig)
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("lazytorrent", version, commit, date, buildSource, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}
	if languageFlag != "" {
		appConfig.UserConfig.Language = languageFlag
	}

	a, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = c.run(ctx, a)
	stop()
	_ = a.Close()

	if err != nil {
		// the issues are already printed
		if errors.Is(err, app.ErrCatalogIssues) {
			os.Exit(1)
		}
		if errMessage, known := a.KnownError(err); known {
			log.Println(errMessage)
			os.Exit(1)
		}

		newErr := errors.Wrap(err, 0)
		stackTrace := newErr.ErrorStack()
		a.Log.Error(stackTrace)

		log.Fatal(fmt.Sprintf("%s\n\n%s", a.Tr.S.ErrorOccurred, stackTrace))
	}
}
