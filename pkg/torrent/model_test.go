package torrent

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDummyLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

func newTestModel(t *testing.T, raw string) *Model {
	t.Helper()
	m := NewModel(newDummyLog())
	require.NoError(t, m.SetRaw([]byte(raw)))
	m.ResetModified()
	return m
}

func TestNewModelIsEmptyDictionary(t *testing.T) {
	m := NewModel(newDummyLog())
	assert.Equal(t, "de", string(m.Raw()))
	assert.True(t, m.IsValid())
	assert.False(t, m.IsModified())
	assert.Equal(t, DefaultTextCodec, m.TextCodec())
}

func TestSetRaw(t *testing.T) {
	type scenario struct {
		name        string
		raw         string
		expectedRaw string
		expectErr   bool
	}

	scenarios := []scenario{
		{"empty input gives an empty dictionary", "", "de", false},
		{"valid torrent", "d4:infod4:name1:aee", "d4:infod4:name1:aee", false},
		{"truncated input keeps the old content", "d4:spam", "d7:comment2:hie", true},
		{"not bencode at all", "hello", "d7:comment2:hie", true},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			m := newTestModel(t, "d7:comment2:hie")
			err := m.SetRaw([]byte(s.raw))
			if s.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, s.expectedRaw, string(m.Raw()))
		})
	}
}

func TestSetRawWithEqualContentKeepsTree(t *testing.T) {
	m := newTestModel(t, "d4:infod4:name1:aee")
	root := m.Root()
	require.NoError(t, m.SetRaw(m.Raw()))
	assert.Same(t, root, m.Root())
}

func TestSetJSON(t *testing.T) {
	m := NewModel(newDummyLog())

	require.NoError(t, m.SetJSON(map[string]interface{}{
		"info": map[string]interface{}{"name": "a"},
	}))
	assert.Equal(t, "d4:infod4:name1:aee", string(m.Raw()))
	assert.Equal(t, map[string]interface{}{
		"info": map[string]interface{}{"name": "a"},
	}, m.JSON())

	assert.Error(t, m.SetJSON(true))
	assert.Equal(t, "d4:infod4:name1:aee", string(m.Raw()))

	require.NoError(t, m.SetJSON(nil))
	assert.Equal(t, "de", string(m.Raw()))
}

func TestStringAccessors(t *testing.T) {
	type scenario struct {
		name        string
		get         func(*Model) string
		set         func(*Model, string) error
		value       string
		expectedRaw string
	}

	scenarios := []scenario{
		{"name", (*Model).Name, (*Model).SetName, "a", "d4:infod4:name1:aee"},
		{"url", (*Model).URL, (*Model).SetURL, "http://x", "d13:publisher-url8:http://xe"},
		{"publisher", (*Model).Publisher, (*Model).SetPublisher, "me", "d9:publisher2:mee"},
		{"created by", (*Model).CreatedBy, (*Model).SetCreatedBy, "lt", "d10:created by2:lte"},
		{"comment", (*Model).Comment, (*Model).SetComment, "hi", "d7:comment2:hie"},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			m := NewModel(newDummyLog())

			require.NoError(t, s.set(m, s.value))
			assert.Equal(t, s.expectedRaw, string(m.Raw()))
			assert.Equal(t, s.value, s.get(m))
			assert.True(t, m.IsModified())

			// clearing removes the key, and an emptied info with it
			require.NoError(t, s.set(m, ""))
			assert.Equal(t, "de", string(m.Raw()))
			assert.Equal(t, "", s.get(m))
			assert.False(t, m.IsModified())
		})
	}
}

func TestCreationTime(t *testing.T) {
	m := NewModel(newDummyLog())
	assert.True(t, m.CreationTime().IsZero())

	require.NoError(t, m.SetCreationTime(time.Unix(1700000000, 500)))
	assert.Equal(t, "d13:creation datei1700000000ee", string(m.Raw()))
	assert.EqualValues(t, 1700000000, m.CreationTime().Unix())

	require.NoError(t, m.SetCreationTime(time.Time{}))
	assert.Equal(t, "de", string(m.Raw()))
}

func TestPieceSizeAndPrivate(t *testing.T) {
	m := newTestModel(t, "d4:infod4:name1:aee")

	require.NoError(t, m.SetPieceSize(16384))
	require.NoError(t, m.SetPrivate(true))
	assert.Equal(t, "d4:infod4:name1:a12:piece lengthi16384e7:privatei1eee", string(m.Raw()))
	assert.EqualValues(t, 16384, m.PieceSize())
	assert.True(t, m.Private())

	require.NoError(t, m.SetPieceSize(0))
	require.NoError(t, m.SetPrivate(false))
	assert.Equal(t, "d4:infod4:name1:aee", string(m.Raw()))
	assert.False(t, m.Private())
}

func TestPieces(t *testing.T) {
	m := newTestModel(t, "d4:infod4:name1:aee")
	hashes := []byte(strings.Repeat("x", 2*PieceHashSize))

	require.NoError(t, m.SetPieces(hashes))
	assert.Equal(t, 2, m.Pieces())
	assert.Equal(t, hashes, m.PieceHashes())
	pieces, err := m.Lookup("info/pieces")
	require.NoError(t, err)
	assert.True(t, pieces.Hex())

	// only the hashes go, the rest of info stays
	require.NoError(t, m.SetPieces(nil))
	assert.Equal(t, "d4:infod4:name1:aee", string(m.Raw()))
	assert.Equal(t, 0, m.Pieces())
}

func TestHashAndMagnetLink(t *testing.T) {
	m := newTestModel(t, "d8:announce8:http://a4:infod4:name3:a bee")
	sum := sha1.Sum([]byte("d4:name3:a be"))
	hash := hex.EncodeToString(sum[:])

	assert.Equal(t, hash, m.Hash())
	assert.Equal(t, "magnet:?xt=urn:btih:"+hash+"&dn=a%20b&tr=http%3A%2F%2Fa", m.MagnetLink())

	empty := NewModel(newDummyLog())
	assert.Equal(t, "", empty.Hash())
	assert.Equal(t, "", empty.MagnetLink())

	plus := newTestModel(t, "d4:infod4:name7:x+y z.ree")
	assert.Contains(t, plus.MagnetLink(), "&dn=x%2By%20z.r")
}

func TestTrackers(t *testing.T) {
	m := NewModel(newDummyLog())

	require.NoError(t, m.SetTrackers([]string{"http://a", " ", "http://b"}))
	assert.Equal(t, "d8:announce8:http://a13:announce-listll8:http://ael8:http://beee", string(m.Raw()))
	assert.Equal(t, []string{"http://a", "http://b"}, m.Trackers())

	require.NoError(t, m.SetTrackers(nil))
	assert.Equal(t, "de", string(m.Raw()))
	assert.Equal(t, []string{}, m.Trackers())

	m = newTestModel(t, "d8:announce8:http://ae")
	assert.Equal(t, []string{"http://a"}, m.Trackers())
}

func TestFiles(t *testing.T) {
	m := newTestModel(t, "d4:infod4:name3:dire")

	files := []File{{Path: "sub/x", Size: 1}, {Path: "y", Size: 2}}
	require.NoError(t, m.SetFiles(files))
	assert.Equal(t, files, m.Files())
	assert.EqualValues(t, 3, m.TotalSize())
	assert.Equal(t,
		"d4:infod5:filesld6:lengthi1e4:pathl3:sub1:xeed6:lengthi2e4:pathl1:yeee4:name3:diree",
		string(m.Raw()),
	)

	require.NoError(t, m.SetName("one.txt"))
	require.NoError(t, m.SetFiles([]File{{Path: "one.txt", Size: 5}}))
	assert.Equal(t, []File{{Path: "one.txt", Size: 5}}, m.Files())
	assert.Equal(t, "d4:infod6:lengthi5e4:name7:one.txtee", string(m.Raw()))
}

func TestSetFileListKeepsLoneFilePath(t *testing.T) {
	m := newTestModel(t, "d4:infod6:lengthi5e4:name5:albumee")

	files := []File{{Path: "disc1/track.mp3", Size: 5}}
	require.NoError(t, m.SetFileList(files))
	assert.Equal(t, files, m.Files())
	assert.Equal(t, "d4:infod5:filesld6:lengthi5e4:pathl5:disc19:track.mp3eee4:name5:albumee", string(m.Raw()))
}

func TestSetFilesEmptyRemovesFiles(t *testing.T) {
	type scenario struct {
		name string
		raw  string
		set  func(m *Model) error
	}

	scenarios := []scenario{
		{
			"single file, nil",
			"d4:infod6:lengthi5e4:name1:aee",
			func(m *Model) error { return m.SetFiles(nil) },
		},
		{
			"file list, empty slice",
			"d4:infod5:filesld6:lengthi1e4:pathl1:xeee4:name1:aee",
			func(m *Model) error { return m.SetFiles([]File{}) },
		},
		{
			"file list, empty list",
			"d4:infod5:filesld6:lengthi1e4:pathl1:xeee4:name1:aee",
			func(m *Model) error { return m.SetFileList([]File{}) },
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			m := newTestModel(t, s.raw)
			require.NoError(t, s.set(m))
			assert.Equal(t, "d4:infod4:name1:aee", string(m.Raw()))
			assert.Empty(t, m.Files())
		})
	}
}

func TestTextCodec(t *testing.T) {
	m := NewModel(newDummyLog())
	require.NoError(t, m.SetTextCodec("windows-1251"))
	assert.Equal(t, "windows-1251", m.TextCodec())

	require.NoError(t, m.SetName("Привет"))
	assert.Equal(t, "d4:infod4:name6:\xcf\xf0\xe8\xe2\xe5\xf2ee", string(m.Raw()))
	assert.Equal(t, "Привет", m.Name())

	assert.Error(t, m.SetTextCodec("no-such-codec"))
	assert.Equal(t, "windows-1251", m.TextCodec())
}

func TestSettersNeedDictionaryRoot(t *testing.T) {
	m := newTestModel(t, "li1ee")

	assert.Equal(t, ErrRootNotDictionary, m.SetName("a"))
	assert.Equal(t, ErrRootNotDictionary, m.SetTrackers([]string{"http://a"}))
	assert.Equal(t, ErrRootNotDictionary, m.SetFiles(nil))
	assert.Equal(t, "", m.Name())
	assert.Empty(t, m.Trackers())
	assert.Equal(t, "li1ee", string(m.Raw()))
}
