package torrent

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultTextCodec is used for human readable strings unless told otherwise
const DefaultTextCodec = "UTF-8"

// PieceHashSize is the size of one SHA-1 piece hash
const PieceHashSize = sha1.Size

var ErrRootNotDictionary = errors.New("the root item is not a dictionary")

// File is one file described by a torrent, with a "/" separated path
type File struct {
	Path string
	Size int64
}

// Model holds a bencoded document, usually a .torrent file, and knows where
// the well known torrent fields live in it
type Model struct {
	Log *logrus.Entry

	root      *bencode.Item
	origin    *bencode.Item
	codec     encoding.Encoding
	codecName string
}

// NewModel returns a model holding an empty dictionary
func NewModel(log *logrus.Entry) *Model {
	m := &Model{
		Log:       log,
		root:      bencode.New(bencode.Dictionary, ""),
		codec:     encoding.Nop,
		codecName: DefaultTextCodec,
	}
	_ = m.SetTextCodec(DefaultTextCodec)
	m.ResetModified()
	return m
}

func (m *Model) replaceRoot(item *bencode.Item) {
	if item != nil && item.Equal(m.root) {
		return
	}
	if item == nil {
		item = bencode.New(bencode.Dictionary, "")
	}
	m.root = item
}

// SetRaw replaces the content with decoded bencode. Empty input gives an
// empty dictionary; on error the content is left untouched.
func (m *Model) SetRaw(raw []byte) error {
	item, err := bencode.Decode(raw)
	if err != nil {
		m.Log.Warn(err)
		return err
	}
	m.replaceRoot(item)
	return nil
}

// Raw is the bencoded content
func (m *Model) Raw() []byte {
	return m.root.Encode()
}

// SetJSON replaces the content with the tree described by decoded JSON
func (m *Model) SetJSON(value interface{}) error {
	if value == nil {
		m.replaceRoot(nil)
		return nil
	}
	item, err := bencode.FromJSON(value)
	if err != nil {
		return err
	}
	m.replaceRoot(item)
	return nil
}

// JSON is the content as values understood by encoding/json
func (m *Model) JSON() interface{} {
	return m.root.ToJSON()
}

func (m *Model) IsValid() bool {
	return m.root != nil && m.root.IsValid()
}

// ResetModified remembers the current content as the unmodified state
func (m *Model) ResetModified() {
	m.origin = m.root.Clone()
}

func (m *Model) IsModified() bool {
	if m.origin == nil {
		return m.root != nil
	}
	return !m.root.Equal(m.origin)
}

// SetTextCodec picks the encoding of human readable strings, e.g. "UTF-8",
// "windows-1251" or "Shift_JIS"
func (m *Model) SetTextCodec(name string) error {
	codec, err := htmlindex.Get(name)
	if err != nil {
		return errors.Errorf("unknown text codec %q", name)
	}
	m.codec = codec
	m.codecName = name
	return nil
}

func (m *Model) TextCodec() string {
	return m.codecName
}

// Text decodes a byte string with the text codec
func (m *Model) Text(b []byte) string {
	return m.toUnicode(b)
}

func (m *Model) toUnicode(b []byte) string {
	decoded, err := m.codec.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// EncodeText encodes s with the text codec
func (m *Model) EncodeText(s string) []byte {
	return m.fromUnicode(s)
}

func (m *Model) fromUnicode(s string) []byte {
	encoded, err := encoding.ReplaceUnsupported(m.codec.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}

func (m *Model) dictionary() (*bencode.Item, error) {
	if !m.root.IsDictionary() {
		return nil, ErrRootNotDictionary
	}
	return m.root, nil
}

func (m *Model) info() *bencode.Item {
	info := m.root.Get("info")
	if info == nil || !info.IsDictionary() {
		return nil
	}
	return info
}

// removeInfoChild drops info/key and then info itself once it is empty
func (m *Model) removeInfoChild(key string) {
	info := m.info()
	if info == nil {
		return
	}
	if child := info.Get(key); child != nil {
		info.RemoveChild(child)
	}
	if info.ChildCount() == 0 {
		m.root.RemoveChild(info)
	}
}

func (m *Model) stringValue(parent *bencode.Item, key string) string {
	if parent == nil {
		return ""
	}
	child := parent.Get(key)
	if child == nil || !child.IsString() {
		return ""
	}
	return m.toUnicode(child.Bytes())
}

func (m *Model) setRootString(key string, value string) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if value == "" {
		if child := root.Get(key); child != nil {
			root.RemoveChild(child)
		}
		return nil
	}
	root.Ensure(bencode.String, key).SetBytes(m.fromUnicode(value))
	return nil
}

// Name is info/name
func (m *Model) Name() string {
	return m.stringValue(m.info(), "name")
}

func (m *Model) SetName(name string) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if name == "" {
		m.removeInfoChild("name")
		return nil
	}
	root.Ensure(bencode.Dictionary, "info").Ensure(bencode.String, "name").SetBytes(m.fromUnicode(name))
	return nil
}

// URL is the publisher-url
func (m *Model) URL() string {
	return m.stringValue(m.root, "publisher-url")
}

func (m *Model) SetURL(url string) error {
	return m.setRootString("publisher-url", url)
}

func (m *Model) Publisher() string {
	return m.stringValue(m.root, "publisher")
}

func (m *Model) SetPublisher(publisher string) error {
	return m.setRootString("publisher", publisher)
}

func (m *Model) CreatedBy() string {
	return m.stringValue(m.root, "created by")
}

func (m *Model) SetCreatedBy(createdBy string) error {
	return m.setRootString("created by", createdBy)
}

func (m *Model) Comment() string {
	return m.stringValue(m.root, "comment")
}

func (m *Model) SetComment(comment string) error {
	return m.setRootString("comment", comment)
}

// CreationTime is the "creation date", the zero time when unset
func (m *Model) CreationTime() time.Time {
	child := m.root.Get("creation date")
	if child == nil || !child.IsInteger() {
		return time.Time{}
	}
	return time.Unix(child.Integer(), 0)
}

// SetCreationTime stores t with second precision; the zero time removes it
func (m *Model) SetCreationTime(t time.Time) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if t.IsZero() {
		if child := root.Get("creation date"); child != nil {
			root.RemoveChild(child)
		}
		return nil
	}
	root.Ensure(bencode.Integer, "creation date").SetInteger(t.Unix())
	return nil
}

// PieceSize is info/piece length
func (m *Model) PieceSize() int64 {
	info := m.info()
	if info == nil {
		return 0
	}
	child := info.Get("piece length")
	if child == nil || !child.IsInteger() {
		return 0
	}
	return child.Integer()
}

func (m *Model) SetPieceSize(size int64) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if size == 0 {
		m.removeInfoChild("piece length")
		return nil
	}
	root.Ensure(bencode.Dictionary, "info").Ensure(bencode.Integer, "piece length").SetInteger(size)
	return nil
}

// Private tells whether info/private is 1
func (m *Model) Private() bool {
	info := m.info()
	if info == nil {
		return false
	}
	child := info.Get("private")
	return child != nil && child.IsInteger() && child.Integer() == 1
}

func (m *Model) SetPrivate(private bool) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if !private {
		m.removeInfoChild("private")
		return nil
	}
	root.Ensure(bencode.Dictionary, "info").Ensure(bencode.Integer, "private").SetInteger(1)
	return nil
}

// PieceHashes is the raw info/pieces string
func (m *Model) PieceHashes() []byte {
	info := m.info()
	if info == nil {
		return nil
	}
	child := info.Get("pieces")
	if child == nil || !child.IsString() {
		return nil
	}
	return child.Bytes()
}

// Pieces is the number of piece hashes
func (m *Model) Pieces() int {
	return len(m.PieceHashes()) / PieceHashSize
}

// SetPieces stores the concatenated piece hashes; empty removes them
func (m *Model) SetPieces(pieces []byte) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	if len(pieces) == 0 {
		m.removeInfoChild("pieces")
		return nil
	}
	item := root.Ensure(bencode.Dictionary, "info").Ensure(bencode.String, "pieces")
	item.SetBytes(pieces)
	item.SetHex(true)
	return nil
}

// Hash is the lowercase hex SHA-1 of the encoded info dictionary, the
// torrent's identity on the network
func (m *Model) Hash() string {
	info := m.root.Get("info")
	if info == nil {
		return ""
	}
	sum := sha1.Sum(info.Encode())
	return hex.EncodeToString(sum[:])
}

// Trackers reads announce-list, flattening its tiers, and falls back to
// announce when the list is empty
func (m *Model) Trackers() []string {
	trackers := []string{}
	if list := m.root.Get("announce-list"); list != nil && list.IsList() {
		for _, tier := range list.Children() {
			if !tier.IsList() {
				continue
			}
			for _, tracker := range tier.Children() {
				if tracker.IsString() {
					trackers = append(trackers, m.toUnicode(tracker.Bytes()))
				}
			}
		}
	}

	if len(trackers) == 0 {
		if announce := m.root.Get("announce"); announce != nil && announce.IsString() {
			trackers = append(trackers, m.toUnicode(announce.Bytes()))
		}
	}
	return trackers
}

// SetTrackers writes every tracker into its own tier and announce as the
// first one. Blank entries are skipped.
func (m *Model) SetTrackers(trackers []string) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}

	for _, key := range []string{"announce-list", "announce"} {
		if child := root.Get(key); child != nil {
			root.RemoveChild(child)
		}
	}

	list := bencode.New(bencode.List, "announce-list")
	for _, tracker := range trackers {
		if strings.TrimSpace(tracker) == "" {
			continue
		}
		tier := bencode.New(bencode.List, "")
		tier.AppendChild(bencode.NewString(m.fromUnicode(tracker), ""))
		list.AppendChild(tier)
	}

	if list.ChildCount() == 0 {
		return nil
	}
	root.AppendMapItem(list)
	announce := list.Child(0).Child(0).Bytes()
	root.Ensure(bencode.String, "announce").SetBytes(append([]byte(nil), announce...))
	return nil
}

// Files lists info/files, or the single file made of info/name and
// info/length
func (m *Model) Files() []File {
	files := []File{}
	info := m.info()
	if info == nil {
		return files
	}

	list := info.Get("files")
	if list == nil || !list.IsList() {
		length := info.Get("length")
		if length == nil || !length.IsInteger() {
			return files
		}
		return append(files, File{Path: m.Name(), Size: length.Integer()})
	}

	for _, entry := range list.Children() {
		pathList := entry.Get("path")
		if pathList == nil || !pathList.IsList() {
			continue
		}
		parts := make([]string, 0, pathList.ChildCount())
		for _, part := range pathList.Children() {
			parts = append(parts, m.toUnicode(part.Bytes()))
		}
		var size int64
		if length := entry.Get("length"); length != nil && length.IsInteger() {
			size = length.Integer()
		}
		files = append(files, File{Path: strings.Join(parts, "/"), Size: size})
	}
	return files
}

// SetFiles stores a single file as info/length and several as info/files.
// An empty slice only removes both.
func (m *Model) SetFiles(files []File) error {
	return m.setFiles(files, len(files) > 1)
}

// SetFileList always stores info/files, even for one file, which keeps the
// relative path of a lone file inside a folder
func (m *Model) SetFileList(files []File) error {
	return m.setFiles(files, true)
}

func (m *Model) setFiles(files []File, multi bool) error {
	root, err := m.dictionary()
	if err != nil {
		return err
	}
	info := root.Ensure(bencode.Dictionary, "info")
	for _, key := range []string{"files", "length"} {
		if child := info.Get(key); child != nil {
			info.RemoveChild(child)
		}
	}

	if len(files) == 0 {
		return nil
	}

	if !multi {
		info.Ensure(bencode.Integer, "length").SetInteger(files[0].Size)
		return nil
	}

	list := info.Ensure(bencode.List, "files")
	for _, file := range files {
		entry := bencode.New(bencode.Dictionary, "")
		entry.AppendMapItem(bencode.NewInteger(file.Size, "length"))
		pathList := bencode.New(bencode.List, "path")
		for _, part := range strings.Split(file.Path, "/") {
			pathList.AppendChild(bencode.NewString(m.fromUnicode(part), ""))
		}
		entry.AppendMapItem(pathList)
		list.AppendChild(entry)
	}
	return nil
}

func (m *Model) TotalSize() int64 {
	var total int64
	for _, file := range m.Files() {
		total += file.Size
	}
	return total
}

// MagnetLink is a magnet URI with the info hash, display name and trackers
func (m *Model) MagnetLink() string {
	hash := m.Hash()
	if hash == "" {
		return ""
	}

	link := "magnet:?xt=urn:btih:" + hash
	if name := m.Name(); name != "" {
		link += "&dn=" + escapeMagnetValue(name)
	}
	for _, tracker := range m.Trackers() {
		link += "&tr=" + escapeMagnetValue(tracker)
	}
	return link
}

// escapeMagnetValue percent-encodes spaces as %20, which clients read more
// reliably than the + of form encoding
func escapeMagnetValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
