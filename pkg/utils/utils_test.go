package utils

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	type scenario struct {
		multilineString string
		expected        []string
	}

	scenarios := []scenario{
		{"", []string{}},
		{"\n", []string{}},
		{
			"announce\r\ninfo\n",
			[]string{"announce", "info"},
		},
		{
			"name\n\ncomment",
			[]string{"name", "", "comment"},
		},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, SplitLines(s.multilineString))
	}
}

func TestWithPadding(t *testing.T) {
	type scenario struct {
		str      string
		padding  int
		expected string
	}

	scenarios := []scenario{
		{"pieces", 1, "pieces"},
		{"pieces", 8, "pieces  "},
		// wide runes take two cells each
		{"名前", 6, "名前  "},
		{ColoredString("hex", color.FgCyan), 4, ColoredString("hex", color.FgCyan) + " "},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, WithPadding(s.str, s.padding))
	}
}

func TestNormalizeLinefeeds(t *testing.T) {
	type scenario struct {
		input    string
		expected string
	}
	scenarios := []scenario{
		{"asdf\r\n", "asdf\n"},
		{"asdf\r\nasdf", "asdf\nasdf"},
		{"asdf\r", "asdf"},
		{"asdf\n", "asdf\n"},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, NormalizeLinefeeds(s.input))
	}
}

func TestResolvePlaceholderString(t *testing.T) {
	type scenario struct {
		templateString string
		arguments      map[string]string
		expected       string
	}

	scenarios := []scenario{
		{"", map[string]string{}, ""},
		{"open {{link}}", map[string]string{}, "open {{link}}"},
		{"open {{link}}", map[string]string{"link": "magnet:?xt"}, "open magnet:?xt"},
		{"{{nothing}}", map[string]string{"nothing": ""}, ""},
		{
			"{{}} {{ link }} { link}}",
			map[string]string{"link": "won't match"},
			"{{}} {{ link }} { link}}",
		},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, ResolvePlaceholderString(s.templateString, s.arguments))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "Привет", Truncate("Привет мир", 6))
}

func TestGetPadWidths(t *testing.T) {
	type scenario struct {
		stringArrays [][]string
		expected     []int
	}

	scenarios := []scenario{
		{[][]string{{""}, {""}}, []int{}},
		{[][]string{{"aa", "b", "ccc"}, {"c", "d", "e"}}, []int{2, 1}},
		{[][]string{{"文件", "b"}, {"c", "d"}}, []int{4}},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, getPadWidths(s.stringArrays))
	}
}

func TestRenderTable(t *testing.T) {
	type scenario struct {
		input       [][]string
		expected    string
		expectedErr string
	}

	scenarios := []scenario{
		{
			input:    [][]string{{"a", "b"}, {"c", "d"}},
			expected: "a b\nc d",
		},
		{
			input:    [][]string{{"info", "dictionary"}, {"name", "string"}, {"pieces", "string"}},
			expected: "info   dictionary\nname   string\npieces string",
		},
		{
			input:       [][]string{{"a"}, {"c", "d"}},
			expectedErr: "Each item must return the same number of strings to display",
		},
	}

	for _, s := range scenarios {
		output, err := RenderTable(s.input)
		assert.EqualValues(t, s.expected, output)
		if s.expectedErr != "" {
			assert.EqualError(t, err, s.expectedErr)
		} else {
			assert.NoError(t, err)
		}
	}
}

type displayFile struct {
	path string
	size string
}

func (f displayFile) GetDisplayStrings() []string {
	return []string{f.path, f.size}
}

func TestRenderList(t *testing.T) {
	output, err := RenderList([]displayFile{{"a.txt", "3 B"}, {"dir/b.bin", "1.0 KiB"}})
	assert.NoError(t, err)
	assert.Equal(t, "a.txt     3 B\ndir/b.bin 1.0 KiB", output)

	_, err = RenderList("not a slice")
	assert.Error(t, err)

	_, err = RenderList([]int{1})
	assert.Error(t, err)

	output, err = RenderList([]displayFile{})
	assert.NoError(t, err)
	assert.Equal(t, "", output)
}

func TestFormatBinaryBytes(t *testing.T) {
	type scenario struct {
		size     int64
		units    []string
		expected string
	}

	scenarios := []scenario{
		{0, nil, "0 B"},
		{1023, nil, "1023 B"},
		{1024, nil, "1.0 KiB"},
		{1536, nil, "1.5 KiB"},
		{5 * 1024 * 1024, nil, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024 * 1024 * 1024, nil, "3072.0 TiB"},
		{2048, []string{"Б", "КиБ", "МиБ", "ГиБ", "ТиБ"}, "2.0 КиБ"},
	}

	for _, s := range scenarios {
		assert.Equal(t, s.expected, FormatBinaryBytes(s.size, s.units))
	}
}

func TestWildcardToRegexp(t *testing.T) {
	type scenario struct {
		pattern   string
		matchCase bool
		input     string
		expected  bool
	}

	scenarios := []scenario{
		{"*.mkv", true, "movie.mkv", true},
		{"*.mkv", true, "movie.MKV", false},
		{"*.mkv", false, "movie.MKV", true},
		{"track?.flac", true, "track1.flac", true},
		{"track?.flac", true, "track10.flac", false},
		{"a+b(1).txt", true, "a+b(1).txt", true},
		{"info", true, "info/name", false},
	}

	for _, s := range scenarios {
		re, err := CompileWildcard(s.pattern, s.matchCase)
		assert.NoError(t, err)
		assert.Equal(t, s.expected, re.MatchString(s.input), s.pattern+" ~ "+s.input)
	}
}
