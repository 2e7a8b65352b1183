package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/config"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/tasks"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spkg/bom"
)

// TorrentCommand reads, writes, creates and edits torrent files
type TorrentCommand struct {
	Log         *logrus.Entry
	OSCommand   *OSCommand
	Tr          *i18n.Localizer
	Config      *config.AppConfig
	TaskManager *tasks.TaskManager
}

// NewTorrentCommand it runs torrent commands
func NewTorrentCommand(log *logrus.Entry, osCommand *OSCommand, tr *i18n.Localizer, config *config.AppConfig) *TorrentCommand {
	return &TorrentCommand{
		Log:         log,
		OSCommand:   osCommand,
		Tr:          tr,
		Config:      config,
		TaskManager: tasks.NewTaskManager(log, &tr.S),
	}
}

// Close stops any hashing still in progress
func (c *TorrentCommand) Close() error {
	c.TaskManager.Close()
	return nil
}

// NewModel returns an empty torrent using the configured text codec
func (c *TorrentCommand) NewModel() (*torrent.Model, error) {
	model := torrent.NewModel(c.Log)
	if err := model.SetTextCodec(c.Config.UserConfig.TextCodec); err != nil {
		return nil, err
	}
	return model, nil
}

func (c *TorrentCommand) readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewComplexError(SourceMissing, i18n.Arg(c.Tr.S.CantOpen, path))
		}
		return nil, WrapError(err)
	}
	return content, nil
}

// Open reads a bencoded torrent file
func (c *TorrentCommand) Open(path string) (*torrent.Model, error) {
	content, err := c.readFile(path)
	if err != nil {
		return nil, err
	}

	model, err := c.NewModel()
	if err != nil {
		return nil, err
	}
	if err := model.SetRaw(content); err != nil {
		return nil, NewComplexError(InvalidBencode, c.Tr.S.BencodedDataNotValid+": "+err.Error())
	}
	model.ResetModified()
	return model, nil
}

// Save writes the torrent to path in bencode
func (c *TorrentCommand) Save(model *torrent.Model, path string) error {
	if err := os.WriteFile(path, model.Raw(), 0o644); err != nil {
		return WrapError(err)
	}
	c.Log.Infof("saved %s", path)
	model.ResetModified()
	return nil
}

// ToJSON is the torrent as JSON, indented as configured. Byte strings are
// percent escaped so any torrent survives the trip.
func (c *TorrentCommand) ToJSON(model *torrent.Model) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent := c.Config.UserConfig.JSON.Indent; indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(model.JSON()); err != nil {
		return nil, WrapError(err)
	}
	return buf.Bytes(), nil
}

// FromJSON builds a torrent from its JSON form
func (c *TorrentCommand) FromJSON(content []byte) (*torrent.Model, error) {
	decoder := json.NewDecoder(bytes.NewReader(bom.Clean(content)))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, NewComplexError(InvalidJSON, err.Error())
	}

	model, err := c.NewModel()
	if err != nil {
		return nil, err
	}
	if err := model.SetJSON(value); err != nil {
		return nil, NewComplexError(InvalidJSON, err.Error())
	}
	return model, nil
}

// ConvertToJSON writes the JSON form of the torrent at src to dest
func (c *TorrentCommand) ConvertToJSON(src string, dest string) error {
	model, err := c.Open(src)
	if err != nil {
		return err
	}
	content, err := c.ToJSON(model)
	if err != nil {
		return err
	}
	return WrapError(os.WriteFile(dest, content, 0o644))
}

// ConvertFromJSON writes the torrent described by the JSON file at src to dest
func (c *TorrentCommand) ConvertFromJSON(src string, dest string) error {
	content, err := c.readFile(src)
	if err != nil {
		return err
	}
	model, err := c.FromJSON(content)
	if err != nil {
		return err
	}
	return c.Save(model, dest)
}

// Diff is a unified diff of the JSON forms of two torrents, empty when they
// are the same
func (c *TorrentCommand) Diff(a *torrent.Model, aName string, b *torrent.Model, bName string) (string, error) {
	aJSON, err := c.ToJSON(a)
	if err != nil {
		return "", err
	}
	bJSON, err := c.ToJSON(b)
	if err != nil {
		return "", err
	}
	if bytes.Equal(aJSON, bJSON) {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(aJSON)),
		B:        difflib.SplitLines(string(bJSON)),
		FromFile: aName,
		ToFile:   bName,
		Context:  3,
	})
	return diff, WrapError(err)
}

// OpenURL opens the publisher url of the torrent in the browser
func (c *TorrentCommand) OpenURL(ctx context.Context, model *torrent.Model) error {
	link := model.URL()
	if link == "" {
		return errors.New(c.Tr.S.NoPublisherURL)
	}
	return c.OSCommand.OpenLink(ctx, link)
}

// CreateOptions override the torrent defaults of the user config
type CreateOptions struct {
	Name      string
	Comment   string
	PieceSize int64
	Trackers  []string
	Private   bool
	// OnProgress is called while hashing, at most once per configured interval
	OnProgress func(torrent.Progress)
}

// Create builds a torrent for a folder, a single file, or several files
// sharing a parent folder
func (c *TorrentCommand) Create(ctx context.Context, paths []string, options CreateOptions) (*torrent.Model, error) {
	root, files, err := c.collectFiles(paths)
	if err != nil {
		return nil, err
	}
	if err := torrent.CheckRoot(root); err != nil {
		return nil, classifyError(err)
	}

	totalSize := lo.Reduce(files, func(total int64, file torrent.File, _ int) int64 { return total + file.Size }, 0)
	pieceSize := lo.Ternary(options.PieceSize != 0, options.PieceSize, c.Config.UserConfig.Torrent.PieceSize)
	if pieceSize == 0 {
		pieceSize = torrent.AutoPieceSize(totalSize)
	}
	if !torrent.IsValidPieceSize(pieceSize) {
		return nil, errors.Errorf("invalid piece size %d", pieceSize)
	}
	c.Log.Infof("creating torrent of %d files, %d bytes, piece size %d", len(files), totalSize, pieceSize)

	pieces, err := c.hash(ctx, root, files, pieceSize, options.OnProgress)
	if err != nil {
		return nil, err
	}

	model, err := c.NewModel()
	if err != nil {
		return nil, err
	}

	name := options.Name
	if name == "" {
		name = c.defaultName(paths, root, files)
	}

	torrentConfig := c.Config.UserConfig.Torrent
	trackers := lo.Uniq(append(append([]string{}, torrentConfig.Trackers...), options.Trackers...))
	creationTime := lo.Ternary(torrentConfig.SkipCreationDate, time.Time{}, time.Now())

	for _, set := range []func() error{
		func() error { return model.SetName(name) },
		func() error {
			if c.isSingleFile(paths) {
				return model.SetFiles(files)
			}
			return model.SetFileList(files)
		},
		func() error { return model.SetPieceSize(pieceSize) },
		func() error { return model.SetPieces(pieces) },
		func() error { return model.SetPrivate(options.Private || torrentConfig.Private) },
		func() error { return model.SetTrackers(trackers) },
		func() error { return model.SetCreatedBy(torrentConfig.CreatedBy) },
		func() error { return model.SetCreationTime(creationTime) },
		func() error { return model.SetComment(options.Comment) },
	} {
		if err := set(); err != nil {
			return nil, WrapError(err)
		}
	}

	return model, nil
}

func (c *TorrentCommand) collectFiles(paths []string) (string, []torrent.File, error) {
	if len(paths) == 0 {
		return "", nil, classifyError(torrent.ErrRootNotSet)
	}

	if len(paths) == 1 {
		switch c.OSCommand.FileType(paths[0]) {
		case "directory":
			root, err := filepath.Abs(paths[0])
			if err != nil {
				return "", nil, WrapError(err)
			}
			if err := torrent.CheckRoot(root); err != nil {
				return "", nil, classifyError(err)
			}
			files, err := torrent.ScanFolder(root)
			if err != nil {
				return "", nil, classifyError(err)
			}
			if len(files) == 0 {
				return "", nil, NewComplexError(PiecesMissing, c.Tr.S.NeedToCalculatePieceHashes)
			}
			return root, files, nil
		case "other":
			return "", nil, NewComplexError(SourceMissing, i18n.Arg(c.Tr.S.CantOpen, paths[0]))
		}
	}

	root, files, err := torrent.CommonRoot(paths)
	if err != nil {
		return "", nil, classifyError(err)
	}
	return root, files, nil
}

// isSingleFile is true when the torrent is made of one file given by itself,
// rather than a folder or a selection of files
func (c *TorrentCommand) isSingleFile(paths []string) bool {
	return len(paths) == 1 && c.OSCommand.FileType(paths[0]) == "file"
}

// defaultName is the folder name for a folder, the file name for a single
// file and the common folder's name otherwise
func (c *TorrentCommand) defaultName(paths []string, root string, files []torrent.File) string {
	if c.isSingleFile(paths) && len(files) == 1 {
		return files[0].Path
	}
	return filepath.Base(root)
}

func (c *TorrentCommand) hash(ctx context.Context, root string, files []torrent.File, pieceSize int64, onProgress func(torrent.Progress)) ([]byte, error) {
	hasher := torrent.NewHasher(c.Log, &c.Tr.S)
	hasher.Workers = c.Config.UserConfig.Hashing.Workers
	if interval := c.Config.UserConfig.Hashing.ProgressInterval; interval > 0 {
		hasher.ProgressInterval = interval
	}
	hasher.OnProgress = onProgress

	var pieces []byte
	err := c.TaskManager.RunTask(ctx, func(ctx context.Context) error {
		var err error
		pieces, err = hasher.Hash(ctx, root, files, pieceSize)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, errors.New(c.Tr.S.HashingCancelled)
		}
		return nil, WrapError(err)
	}
	return pieces, nil
}

// EditOptions are the changes made by `lazytorrent edit`. Nil fields are
// left alone.
type EditOptions struct {
	Name         *string
	Comment      *string
	Publisher    *string
	URL          *string
	CreatedBy    *string
	CreationDate *string
	Trackers     []string
	Private      *bool
	PieceSize    int64
	// Root is the folder holding the torrent's files, used to rehash the pieces
	Root string

	// Set holds path=value assignments, e.g. "info/name=new name"
	Set []string
	// Rename holds path=key assignments
	Rename []string
	Delete []string
}

// Edit applies options to the torrent. Changing the piece size needs the
// files to recalculate the piece hashes.
func (c *TorrentCommand) Edit(ctx context.Context, model *torrent.Model, options EditOptions) error {
	stringSetters := []struct {
		value *string
		set   func(string) error
	}{
		{options.Name, model.SetName},
		{options.Comment, model.SetComment},
		{options.Publisher, model.SetPublisher},
		{options.URL, model.SetURL},
		{options.CreatedBy, model.SetCreatedBy},
	}
	for _, setter := range stringSetters {
		if setter.value == nil {
			continue
		}
		if err := setter.set(utils.NormalizeLinefeeds(*setter.value)); err != nil {
			return WrapError(err)
		}
	}

	if options.CreationDate != nil {
		date, err := ParseDate(*options.CreationDate, time.Now())
		if err != nil {
			return err
		}
		if err := model.SetCreationTime(date); err != nil {
			return WrapError(err)
		}
	}

	if options.Trackers != nil {
		if err := model.SetTrackers(options.Trackers); err != nil {
			return WrapError(err)
		}
	}

	if options.Private != nil {
		if err := model.SetPrivate(*options.Private); err != nil {
			return WrapError(err)
		}
	}

	if err := c.editTree(model, options); err != nil {
		return err
	}

	return c.updatePieces(ctx, model, options.PieceSize, options.Root)
}

func (c *TorrentCommand) editTree(model *torrent.Model, options EditOptions) error {
	lookup := func(path string) (*bencode.Item, error) {
		item, err := model.Lookup(path)
		if err != nil {
			return nil, errors.New(i18n.Arg(c.Tr.S.PathNotFound, path))
		}
		return item, nil
	}

	for _, assignment := range options.Set {
		path, value, err := c.splitAssignment(assignment)
		if err != nil {
			return err
		}
		item, err := lookup(path)
		if err != nil {
			return err
		}
		if err := model.SetValue(item, value); err != nil {
			return WrapError(err)
		}
	}

	for _, assignment := range options.Rename {
		path, key, err := c.splitAssignment(assignment)
		if err != nil {
			return err
		}
		item, err := lookup(path)
		if err != nil {
			return err
		}
		if err := model.Rename(item, key); err != nil {
			return c.treeError(err)
		}
	}

	for _, path := range options.Delete {
		item, err := lookup(path)
		if err != nil {
			return err
		}
		if err := model.Remove(item); err != nil {
			return c.treeError(err)
		}
	}

	return nil
}

func (c *TorrentCommand) treeError(err error) error {
	if errors.Is(err, torrent.ErrRootItem) {
		return errors.New(c.Tr.S.RootCannotBeChanged)
	}
	return WrapError(err)
}

func (c *TorrentCommand) splitAssignment(assignment string) (string, string, error) {
	path, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return "", "", errors.New(i18n.Arg(c.Tr.S.InvalidAssignment, assignment))
	}
	return path, value, nil
}

func (c *TorrentCommand) updatePieces(ctx context.Context, model *torrent.Model, pieceSize int64, root string) error {
	if pieceSize == 0 && root == "" {
		return nil
	}
	if pieceSize == 0 {
		pieceSize = model.PieceSize()
	}
	if !torrent.IsValidPieceSize(pieceSize) {
		return errors.Errorf("invalid piece size %d", pieceSize)
	}

	if root == "" {
		if pieceSize == model.PieceSize() {
			return nil
		}
		return NewComplexError(PiecesMissing, c.Tr.S.NeedToCalculatePieceHashes)
	}
	if err := torrent.CheckRoot(root); err != nil {
		return classifyError(err)
	}

	pieces, err := c.hash(ctx, root, model.Files(), pieceSize, nil)
	if err != nil {
		return err
	}
	if err := model.SetPieceSize(pieceSize); err != nil {
		return WrapError(err)
	}
	return WrapError(model.SetPieces(pieces))
}

// CheckPieces tells whether the piece hashes cover the files of the torrent
func (c *TorrentCommand) CheckPieces(model *torrent.Model) error {
	if len(model.Files()) == 0 {
		return nil
	}
	if model.Pieces() != torrent.PieceCount(model.TotalSize(), model.PieceSize()) {
		return NewComplexError(PiecesMissing, c.Tr.S.NeedToCalculatePieceHashes)
	}
	return nil
}

// ParseDate reads "now", seconds since the epoch, a date like 2006-01-02 or
// an RFC 3339 timestamp. An empty string is the zero time.
func ParseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return time.Time{}, nil
	case "now":
		return now, nil
	}

	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(seconds, 0), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if date, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return date, nil
		}
	}
	return time.Time{}, errors.Errorf("can't read %q as a date", value)
}
