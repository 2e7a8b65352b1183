package torrent

import (
	"path"
	"regexp"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
	"github.com/samber/lo"
)

// FilterMode tells FileFilter how to read its pattern
type FilterMode int

const (
	// FilterName keeps files whose base name contains the pattern, ignoring case
	FilterName FilterMode = iota
	// FilterExtension keeps files with one of a comma or space separated list
	// of extensions, e.g. "mkv, srt"
	FilterExtension
	// FilterWildcards matches the whole path against a shell style pattern
	FilterWildcards
	// FilterRegexp keeps files whose path contains a match of the expression
	FilterRegexp
)

var filterModeNames = []string{"name", "extension", "wildcards", "regexp"}

func (m FilterMode) String() string {
	if int(m) < 0 || int(m) >= len(filterModeNames) {
		return "unknown"
	}
	return filterModeNames[m]
}

// ParseFilterMode is the inverse of FilterMode.String
func ParseFilterMode(name string) (FilterMode, error) {
	index := lo.IndexOf(filterModeNames, strings.ToLower(name))
	if index < 0 {
		return FilterName, errors.Errorf("unknown filter mode %q, expected one of %s", name, strings.Join(filterModeNames, ", "))
	}
	return FilterMode(index), nil
}

// FileFilter narrows a list of files down to the ones a pattern selects
type FileFilter struct {
	list *utils.FilteredList[File]
}

func NewFileFilter(files []File) *FileFilter {
	return &FileFilter{list: utils.NewFilteredList(files)}
}

// Apply replaces the current filter. An empty pattern shows every file.
func (f *FileFilter) Apply(mode FilterMode, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		f.list.ClearFilter()
		return nil
	}

	match, err := fileMatcher(mode, pattern)
	if err != nil {
		return err
	}
	f.list.Filter(func(file File, _ int) bool { return match(file) })
	return nil
}

// SortBySize orders the visible files from largest to smallest, keeping path
// order among equal sizes
func (f *FileFilter) SortBySize() {
	f.list.Sort(func(a, b File) bool { return a.Size > b.Size })
}

func (f *FileFilter) Files() []File {
	return f.list.GetItems()
}

func (f *FileFilter) Len() int {
	return f.list.Len()
}

// TotalSize is the size of the visible files
func (f *FileFilter) TotalSize() int64 {
	return lo.Reduce(f.list.GetItems(), func(total int64, file File, _ int) int64 {
		return total + file.Size
	}, 0)
}

func fileMatcher(mode FilterMode, pattern string) (func(File) bool, error) {
	switch mode {
	case FilterName:
		needle := strings.ToLower(pattern)
		return func(file File) bool {
			return strings.Contains(strings.ToLower(path.Base(file.Path)), needle)
		}, nil

	case FilterExtension:
		extensions := lo.Uniq(lo.FilterMap(strings.FieldsFunc(pattern, isListSeparator), func(ext string, _ int) (string, bool) {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			return ext, ext != ""
		}))
		return func(file File) bool {
			ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Path), "."))
			return lo.Contains(extensions, ext)
		}, nil

	case FilterWildcards:
		re, err := utils.CompileWildcard(pattern, false)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		return func(file File) bool { return re.MatchString(file.Path) }, nil

	case FilterRegexp:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		return func(file File) bool { return re.MatchString(file.Path) }, nil
	}
	return nil, errors.Errorf("unknown filter mode %d", mode)
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' '
}
