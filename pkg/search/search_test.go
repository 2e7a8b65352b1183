package search

import (
	"io"
	"testing"

	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTorrent = "d7:comment11:Hello World10:created by8:lazyhash4:infod6:lengthi42e4:name9:hello.txt12:piece lengthi16384eee"

func newDummyLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

func newTestModel(t *testing.T) *torrent.Model {
	t.Helper()
	m := torrent.NewModel(newDummyLog())
	require.NoError(t, m.SetRaw([]byte(sampleTorrent)))
	return m
}

func paths(m *torrent.Model, items []*bencode.Item) []string {
	return lo.Map(items, func(item *bencode.Item, _ int) string { return m.Path(item) })
}

func TestMatches(t *testing.T) {
	type scenario struct {
		name     string
		options  Options
		expected []string
	}

	scenarios := []scenario{
		{
			"plain text ignores case by default",
			Options{Text: "hello"},
			[]string{"comment", "info/name"},
		},
		{
			"match case",
			Options{Text: "hello", MatchCase: true},
			[]string{"info/name"},
		},
		{
			"exact match",
			Options{Text: "HELLO.TXT", Exact: true},
			[]string{"info/name"},
		},
		{
			"exact match needs the whole value",
			Options{Text: "hello", Exact: true},
			[]string{},
		},
		{
			"plain text is not an expression",
			Options{Text: "hello.*"},
			[]string{},
		},
		{
			"keys only",
			Options{Text: "length", Keys: true},
			[]string{"info/length", "info/piece length"},
		},
		{
			"keys and values",
			Options{Text: "name", Keys: true, Values: true},
			[]string{"info/name"},
		},
		{
			"wildcards",
			Options{Text: "*.txt", Syntax: Wildcards},
			[]string{"info/name"},
		},
		{
			"exact wildcards",
			Options{Text: "h?llo*", Syntax: Wildcards, Exact: true},
			[]string{"comment", "info/name"},
		},
		{
			"regular expression over integers",
			Options{Text: `^\d+$`, Syntax: RegExp},
			[]string{"info/length", "info/piece length"},
		},
		{
			"hex digits of strings",
			Options{Text: "68656c6c6f", Hex: true},
			[]string{"info/name"},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			m := newTestModel(t)
			searcher, err := New(newDummyLog(), m, s.options)
			require.NoError(t, err)
			assert.Equal(t, s.expected, paths(m, searcher.Matches()))
		})
	}
}

func TestNewErrors(t *testing.T) {
	m := newTestModel(t)

	_, err := New(newDummyLog(), m, Options{})
	assert.Equal(t, ErrEmptyText, err)

	_, err = New(newDummyLog(), m, Options{Text: "(", Syntax: RegExp})
	assert.Error(t, err)

	_, err = New(newDummyLog(), m, Options{Text: "x", Syntax: Syntax(7)})
	assert.Error(t, err)

	searcher, err := New(newDummyLog(), m, Options{Text: "x"})
	require.NoError(t, err)
	assert.True(t, searcher.Options().Values)
}

func TestSearchUsesTextCodec(t *testing.T) {
	m := torrent.NewModel(newDummyLog())
	require.NoError(t, m.SetTextCodec("windows-1251"))
	require.NoError(t, m.SetComment("Привет мир"))

	searcher, err := New(newDummyLog(), m, Options{Text: "привет"})
	require.NoError(t, err)
	assert.Equal(t, []string{"comment"}, paths(m, searcher.Matches()))
}

func TestFindNext(t *testing.T) {
	type scenario struct {
		direction        Direction
		from             string
		expected         string
		expectedPosition int
	}

	scenarios := []scenario{
		{Down, "", "comment", 1},
		{Down, "comment", "info/name", 2},
		{Down, "info", "info/name", 2},
		{Down, "info/name", "comment", 1},
		{Up, "", "info/name", 2},
		{Up, "info/name", "comment", 1},
		{Up, "comment", "info/name", 2},
		{Up, "info/piece length", "info/name", 2},
	}

	for _, s := range scenarios {
		m := newTestModel(t)
		searcher, err := New(newDummyLog(), m, Options{Text: "hello", Direction: s.direction})
		require.NoError(t, err)

		var from *bencode.Item
		if s.from != "" {
			from, err = m.Lookup(s.from)
			require.NoError(t, err)
		}

		item, position, total := searcher.FindNext(from)
		require.NotNil(t, item)
		assert.Equal(t, s.expected, m.Path(item))
		assert.Equal(t, s.expectedPosition, position)
		assert.Equal(t, 2, total)
	}
}

func TestFindNextWithoutMatches(t *testing.T) {
	m := newTestModel(t)
	searcher, err := New(newDummyLog(), m, Options{Text: "nothing here"})
	require.NoError(t, err)

	item, position, total := searcher.FindNext(nil)
	assert.Nil(t, item)
	assert.Equal(t, 0, position)
	assert.Equal(t, 0, total)
}

func TestReplace(t *testing.T) {
	m := newTestModel(t)
	searcher, err := New(newDummyLog(), m, Options{Text: "hello"})
	require.NoError(t, err)

	name, err := m.Lookup("info/name")
	require.NoError(t, err)
	require.NoError(t, searcher.Replace(name, "x.bin", false))
	assert.Equal(t, "x.bin", m.Name())

	require.NoError(t, searcher.Replace(name, "ff00", true))
	assert.Equal(t, []byte{0xff, 0x00}, name.Bytes())
	assert.Equal(t, ErrInvalidHexValue, searcher.Replace(name, "zz", true))

	length, err := m.Lookup("info/length")
	require.NoError(t, err)
	assert.Error(t, searcher.Replace(length, "abc", false))
	require.NoError(t, searcher.Replace(length, "ff", true))
	assert.EqualValues(t, 255, length.Integer())

	info, err := m.Lookup("info")
	require.NoError(t, err)
	assert.Equal(t, ErrNotReplaceable, searcher.Replace(info, "1", false))
}

func TestReplaceAll(t *testing.T) {
	type scenario struct {
		name        string
		options     Options
		with        string
		hex         bool
		expected    int
		expectErr   bool
		expectedRaw string
	}

	scenarios := []scenario{
		{
			name:        "integers",
			options:     Options{Text: `^\d+$`, Syntax: RegExp},
			with:        "7",
			expected:    2,
			expectedRaw: "d7:comment11:Hello World10:created by8:lazyhash4:infod6:lengthi7e4:name9:hello.txt12:piece lengthi7eee",
		},
		{
			name:        "strings",
			options:     Options{Text: "hello"},
			with:        "bye",
			expected:    2,
			expectedRaw: "d7:comment3:bye10:created by8:lazyhash4:infod6:lengthi42e4:name3:bye12:piece lengthi16384eee",
		},
		{
			name:        "a replacement that does not fit changes nothing",
			options:     Options{Text: "l", Keys: true, Values: true},
			with:        "bye",
			expectErr:   true,
			expectedRaw: sampleTorrent,
		},
		{
			name:        "containers are skipped",
			options:     Options{Text: "info", Keys: true},
			with:        "1",
			expected:    0,
			expectedRaw: sampleTorrent,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			m := newTestModel(t)
			searcher, err := New(newDummyLog(), m, s.options)
			require.NoError(t, err)

			replaced, err := searcher.ReplaceAll(s.with, s.hex)
			if s.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, s.expected, replaced)
			}
			assert.Equal(t, s.expectedRaw, string(m.Raw()))
		})
	}
}

func TestStatus(t *testing.T) {
	localizer := i18n.NewLocalizer(newDummyLog(), i18n.EN)

	assert.Equal(t, "No matches found", MatchStatus(localizer, 0, 0))
	assert.Equal(t, "2 of 3 matches", MatchStatus(localizer, 2, 3))
	assert.Equal(t, "1 of 1 match", MatchStatus(localizer, 1, 1))
	assert.Equal(t, "No matches found", ReplaceStatus(localizer, 0))
	assert.Equal(t, "2 values were replaced", ReplaceStatus(localizer, 2))
}
