package torrent

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
)

var (
	ErrRootItem      = errors.New("the root item can't be moved, renamed or removed")
	ErrNotEditable   = errors.New("only integers and strings have an editable value")
	ErrNotDictionary = errors.New("only dictionary members have a key")
)

// maximum number of runes of a value shown in a tree row
const displayValueLength = 150

// Root is the top item of the tree
func (m *Model) Root() *bencode.Item {
	return m.root
}

// Lookup resolves a "/" separated path such as "info/files/0/path" where
// list members are addressed by index. Segments are unescaped with
// bencode.UnescapeRaw so keys holding a slash can be written as %2f.
func (m *Model) Lookup(path string) (*bencode.Item, error) {
	item := m.root
	path = strings.Trim(path, "/")
	if path == "" {
		return item, nil
	}

	for _, segment := range strings.Split(path, "/") {
		var next *bencode.Item
		switch {
		case item.IsList():
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, errors.Errorf("%q is not a list index", segment)
			}
			next = item.Child(index)
		case item.IsDictionary():
			next = item.Get(string(bencode.UnescapeRaw(segment)))
		}
		if next == nil {
			return nil, errors.Errorf("no item at %q", path)
		}
		item = next
	}
	return item, nil
}

// Path is the inverse of Lookup
func (m *Model) Path(item *bencode.Item) string {
	segments := []string{}
	for ; item != nil && item != m.root; item = item.Parent() {
		parent := item.Parent()
		if parent == nil {
			break
		}
		if parent.IsDictionary() {
			segments = append(segments, strings.Replace(bencode.EscapeRaw([]byte(item.Key())), "/", "%2f", -1))
		} else {
			segments = append(segments, strconv.Itoa(item.Row()))
		}
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}

func (m *Model) movableListMember(item *bencode.Item) bool {
	return item != nil && item != m.root && item.Parent() != nil && item.Parent().IsList()
}

// Up moves a list member one row up. Dictionary members keep their sorted
// position.
func (m *Model) Up(item *bencode.Item) bool {
	if !m.movableListMember(item) || item.Row() == 0 {
		return false
	}
	item.SetRow(item.Row() - 1)
	return true
}

// Down moves a list member one row down
func (m *Model) Down(item *bencode.Item) bool {
	if !m.movableListMember(item) || item.Row()+1 == item.Parent().ChildCount() {
		return false
	}
	item.SetRow(item.Row() + 1)
	return true
}

// AppendRow adds an integer 0 to parent: at the end of a list, or with an
// empty key at the top of a dictionary. Other items get nothing.
func (m *Model) AppendRow(parent *bencode.Item) *bencode.Item {
	if parent == nil {
		return nil
	}
	item := bencode.NewInteger(0, "")
	switch {
	case parent.IsList():
		parent.AppendChild(item)
	case parent.IsDictionary():
		parent.InsertChild(0, item)
	default:
		return nil
	}
	return item
}

// ChangeType converts item, dropping its value and children
func (m *Model) ChangeType(item *bencode.Item, t bencode.Type) error {
	if item == m.root {
		return ErrRootItem
	}
	item.SetType(t)
	return nil
}

// Rename changes the key of a dictionary member and moves it so members stay
// sorted
func (m *Model) Rename(item *bencode.Item, key string) error {
	if item == m.root {
		return ErrRootItem
	}
	parent := item.Parent()
	if parent == nil || !parent.IsDictionary() {
		return ErrNotDictionary
	}

	newRow := 0
	for ; newRow < parent.ChildCount(); newRow++ {
		if key < parent.Child(newRow).Key() {
			break
		}
	}
	// the item itself is counted when moving towards the end
	if newRow > item.Row() {
		newRow--
	}

	item.SetKey(key)
	if bencode.IsHexKey(key) && item.IsString() {
		item.SetHex(true)
	}
	item.SetRow(newRow)
	return nil
}

// SetValue parses text into an integer or string item. Hex strings take hex
// digits; other strings are encoded with the text codec.
func (m *Model) SetValue(item *bencode.Item, text string) error {
	switch {
	case item.IsInteger():
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return errors.Errorf("%q is not an integer", text)
		}
		item.SetInteger(n)

	case item.IsString():
		if !item.Hex() {
			item.SetBytes(m.fromUnicode(text))
			return nil
		}
		b, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return errors.Errorf("%q is not hex encoded", text)
		}
		item.SetBytes(b)

	default:
		return ErrNotEditable
	}
	return nil
}

// SetHex switches a string item between hex and text display
func (m *Model) SetHex(item *bencode.Item, on bool) error {
	if item == m.root {
		return ErrRootItem
	}
	if !item.IsString() {
		return ErrNotEditable
	}
	item.SetHex(on)
	return nil
}

// Remove detaches item from the tree
func (m *Model) Remove(item *bencode.Item) error {
	if item == m.root || item.Parent() == nil {
		return ErrRootItem
	}
	item.Parent().RemoveChild(item)
	return nil
}

// Row is one line of the flattened tree
type Row struct {
	Item  *bencode.Item
	Depth int
	Name  string
	Type  bencode.Type
	Hex   bool
	Value string
}

// Rows flattens the tree in pre-order for display
func (m *Model) Rows() []Row {
	rows := []Row{}
	var walk func(item *bencode.Item, depth int)
	walk = func(item *bencode.Item, depth int) {
		rows = append(rows, Row{
			Item:  item,
			Depth: depth,
			Name:  m.displayName(item),
			Type:  item.Type(),
			Hex:   item.IsString() && item.Hex(),
			Value: m.DisplayValue(item),
		})
		for _, child := range item.Children() {
			walk(child, depth+1)
		}
	}
	walk(m.root, 0)
	return rows
}

func (m *Model) displayName(item *bencode.Item) string {
	parent := item.Parent()
	switch {
	case item == m.root:
		return "root"
	case parent != nil && parent.IsDictionary():
		return m.toUnicode([]byte(item.Key()))
	default:
		return strconv.Itoa(item.Row())
	}
}

// DisplayValue is the value as shown in the tree: integers in decimal,
// strings as hex or decoded text, truncated
func (m *Model) DisplayValue(item *bencode.Item) string {
	return utils.Truncate(m.EditValue(item), displayValueLength)
}

// EditValue is the full value in the form SetValue accepts
func (m *Model) EditValue(item *bencode.Item) string {
	switch {
	case item.IsInteger():
		return strconv.FormatInt(item.Integer(), 10)
	case item.IsString() && item.Hex():
		return hex.EncodeToString(item.Bytes())
	case item.IsString():
		return m.toUnicode(item.Bytes())
	}
	return ""
}
