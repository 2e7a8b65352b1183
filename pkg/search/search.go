package search

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Syntax is how the search text is read
type Syntax int

const (
	Plain Syntax = iota
	Wildcards
	RegExp
)

type Direction int

const (
	Down Direction = iota
	Up
)

var (
	ErrEmptyText       = errors.New("nothing to search for")
	ErrNotReplaceable  = errors.New("only integer and string values can be replaced")
	ErrInvalidHexValue = errors.New("the replacement is not hex encoded")
)

// Options mirror the search dialog. When neither Keys nor Values is set only
// values are searched.
type Options struct {
	Text      string
	MatchCase bool
	// Exact makes the text match the whole key or value
	Exact  bool
	Syntax Syntax
	Keys   bool
	Values bool
	// Hex compares string values by their hex digits instead of their text
	Hex       bool
	Direction Direction
}

// Searcher finds and replaces keys and values in a torrent tree
type Searcher struct {
	Log     *logrus.Entry
	model   *torrent.Model
	options Options
	re      *regexp.Regexp
}

func New(log *logrus.Entry, model *torrent.Model, options Options) (*Searcher, error) {
	if options.Text == "" {
		return nil, ErrEmptyText
	}
	if !options.Keys && !options.Values {
		options.Values = true
	}

	re, err := compile(options)
	if err != nil {
		return nil, err
	}
	log.Debugf("search expression: %s", re.String())

	return &Searcher{Log: log, model: model, options: options, re: re}, nil
}

func compile(options Options) (*regexp.Regexp, error) {
	var expr string
	switch options.Syntax {
	case Plain:
		expr = regexp.QuoteMeta(options.Text)
	case Wildcards:
		expr = utils.WildcardToRegexp(options.Text)
	case RegExp:
		expr = options.Text
	default:
		return nil, errors.Errorf("unknown search syntax %d", options.Syntax)
	}

	if options.Exact {
		expr = "^(?:" + expr + ")$"
	}
	if !options.MatchCase {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return re, nil
}

func (s *Searcher) Options() Options {
	return s.options
}

func (s *Searcher) matches(item *bencode.Item) bool {
	parent := item.Parent()
	if s.options.Keys && parent != nil && parent.IsDictionary() {
		if s.re.MatchString(s.model.Text([]byte(item.Key()))) {
			return true
		}
	}

	if !s.options.Values {
		return false
	}
	switch {
	case item.IsInteger():
		return s.re.MatchString(strconv.FormatInt(item.Integer(), 10))
	case item.IsString() && s.options.Hex:
		return s.re.MatchString(hex.EncodeToString(item.Bytes()))
	case item.IsString():
		return s.re.MatchString(s.model.Text(item.Bytes()))
	}
	return false
}

// items lists the tree in pre-order, without the root
func (s *Searcher) items() []*bencode.Item {
	return lo.FilterMap(s.model.Rows(), func(row torrent.Row, _ int) (*bencode.Item, bool) {
		return row.Item, row.Item != s.model.Root()
	})
}

// Matches lists every matching item in tree order
func (s *Searcher) Matches() []*bencode.Item {
	return lo.Filter(s.items(), func(item *bencode.Item, _ int) bool {
		return s.matches(item)
	})
}

// FindNext returns the first match after from in the search direction,
// wrapping around at the end of the tree, with its 1-based position among all
// matches and their total. A nil from starts at the top, or at the bottom
// when searching up. Without any match the item is nil.
func (s *Searcher) FindNext(from *bencode.Item) (*bencode.Item, int, int) {
	items := s.items()
	matched := []int{}
	for index, item := range items {
		if s.matches(item) {
			matched = append(matched, index)
		}
	}
	if len(matched) == 0 {
		return nil, 0, 0
	}

	start := lo.IndexOf(items, from)
	position := -1
	if s.options.Direction == Up {
		if start < 0 {
			start = len(items)
		}
		for i := len(matched) - 1; i >= 0; i-- {
			if matched[i] < start {
				position = i
				break
			}
		}
		if position < 0 {
			position = len(matched) - 1
		}
	} else {
		for i, index := range matched {
			if index > start {
				position = i
				break
			}
		}
		if position < 0 {
			position = 0
		}
	}

	return items[matched[position]], position + 1, len(matched)
}

// Replace sets the whole value of item. with is read as hex digits when
// isHex is set.
func (s *Searcher) Replace(item *bencode.Item, with string, isHex bool) error {
	switch {
	case item.IsInteger():
		n, err := parseInteger(with, isHex)
		if err != nil {
			return err
		}
		item.SetInteger(n)

	case item.IsString():
		b, err := s.encode(with, isHex)
		if err != nil {
			return err
		}
		item.SetBytes(b)

	default:
		return ErrNotReplaceable
	}
	return nil
}

// ReplaceAll replaces the value of every matching integer and string and
// returns how many were replaced. Nothing changes when the replacement does
// not fit one of them.
func (s *Searcher) ReplaceAll(with string, isHex bool) (int, error) {
	targets := lo.Filter(s.Matches(), func(item *bencode.Item, _ int) bool {
		return item.IsInteger() || item.IsString()
	})

	if lo.ContainsBy(targets, (*bencode.Item).IsInteger) {
		if _, err := parseInteger(with, isHex); err != nil {
			return 0, err
		}
	}
	if lo.ContainsBy(targets, (*bencode.Item).IsString) {
		if _, err := s.encode(with, isHex); err != nil {
			return 0, err
		}
	}

	for _, item := range targets {
		if err := s.Replace(item, with, isHex); err != nil {
			return 0, err
		}
	}
	s.Log.Infof("replaced %d values", len(targets))
	return len(targets), nil
}

func (s *Searcher) encode(with string, isHex bool) ([]byte, error) {
	if !isHex {
		return s.model.EncodeText(with), nil
	}
	b, err := hex.DecodeString(strings.TrimSpace(with))
	if err != nil {
		return nil, ErrInvalidHexValue
	}
	return b, nil
}

func parseInteger(with string, isHex bool) (int64, error) {
	base := 10
	if isHex {
		base = 16
	}
	n, err := strconv.ParseInt(strings.TrimSpace(with), base, 64)
	if err != nil {
		return 0, errors.Errorf("%q is not an integer", with)
	}
	return n, nil
}

// MatchStatus is the status line shown after a search
func MatchStatus(tr *i18n.Localizer, position int, total int) string {
	if total == 0 {
		return tr.S.NoMatchesFound
	}
	return tr.Matches(position, total)
}

// ReplaceStatus is the status line shown after replacing values
func ReplaceStatus(tr *i18n.Localizer, replaced int) string {
	if replaced == 0 {
		return tr.S.NoMatchesFound
	}
	return tr.ValuesReplaced(replaced)
}
