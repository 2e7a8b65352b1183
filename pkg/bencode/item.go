package bencode

import (
	"bytes"
	"strconv"

	"github.com/samber/lo"
)

// Type is the kind of value held by an Item
type Type int

const (
	Invalid Type = iota
	Integer
	String
	List
	Dictionary
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case String:
		return "string"
	case List:
		return "list"
	case Dictionary:
		return "dictionary"
	}
	return "invalid"
}

// ParseType is the inverse of Type.String
func ParseType(name string) (Type, bool) {
	for _, t := range []Type{Integer, String, List, Dictionary} {
		if t.String() == name {
			return t, true
		}
	}
	return Invalid, false
}

// HexKeys are dictionary keys whose string values are binary and are shown as hex
var HexKeys = []string{"pieces", "originator", "certificate", "signature"}

// IsHexKey tells us whether values stored under key should be shown as hex
func IsHexKey(key string) bool {
	return lo.Contains(HexKeys, key)
}

// Item is a node of a bencoded tree. Dictionary members carry their key,
// list members don't.
type Item struct {
	typ      Type
	integer  int64
	str      []byte
	key      []byte
	hex      bool
	parent   *Item
	children []*Item
}

// New returns an empty item of the given type
func New(t Type, key string) *Item {
	return &Item{typ: t, key: keyBytes(key)}
}

// NewInteger returns an integer item
func NewInteger(n int64, key string) *Item {
	return &Item{typ: Integer, integer: n, key: keyBytes(key)}
}

// NewString returns a byte string item
func NewString(b []byte, key string) *Item {
	return &Item{typ: String, str: b, key: keyBytes(key)}
}

func keyBytes(key string) []byte {
	if key == "" {
		return nil
	}
	return []byte(key)
}

func (i *Item) Type() Type { return i.typ }

// SetType changes the type of the item, dropping its value and children
func (i *Item) SetType(t Type) {
	if t == i.typ {
		return
	}
	for _, child := range i.children {
		child.parent = nil
	}
	i.children = nil
	i.integer = 0
	i.str = nil
	i.typ = t
}

func (i *Item) IsValid() bool      { return i.typ != Invalid }
func (i *Item) IsInteger() bool    { return i.typ == Integer }
func (i *Item) IsString() bool     { return i.typ == String }
func (i *Item) IsList() bool       { return i.typ == List }
func (i *Item) IsDictionary() bool { return i.typ == Dictionary }

func (i *Item) Integer() int64 { return i.integer }

func (i *Item) SetInteger(n int64) { i.integer = n }

func (i *Item) Bytes() []byte { return i.str }

func (i *Item) SetBytes(b []byte) { i.str = b }

func (i *Item) Key() string { return string(i.key) }

func (i *Item) SetKey(key string) { i.key = keyBytes(key) }

func (i *Item) Hex() bool { return i.hex }

func (i *Item) SetHex(hex bool) { i.hex = hex }

func (i *Item) Parent() *Item { return i.parent }

func (i *Item) Children() []*Item { return i.children }

func (i *Item) ChildCount() int { return len(i.children) }

// Child returns the child at index, or nil when out of range
func (i *Item) Child(index int) *Item {
	if index < 0 || index >= len(i.children) {
		return nil
	}
	return i.children[index]
}

// Get returns the first child stored under key
func (i *Item) Get(key string) *Item {
	for _, child := range i.children {
		if string(child.key) == key {
			return child
		}
	}
	return nil
}

// Row is the index of the item within its parent, -1 for a detached item
func (i *Item) Row() int {
	if i.parent == nil {
		return -1
	}
	for index, child := range i.parent.children {
		if child == i {
			return index
		}
	}
	return -1
}

// SetRow moves the item to a new index within its parent
func (i *Item) SetRow(row int) {
	parent := i.parent
	if parent == nil {
		return
	}
	current := i.Row()
	if row < 0 || row >= len(parent.children) || row == current {
		return
	}
	parent.children = append(parent.children[:current], parent.children[current+1:]...)
	parent.children = append(parent.children[:row], append([]*Item{i}, parent.children[row:]...)...)
}

func (i *Item) detach() {
	if i.parent != nil {
		i.parent.RemoveChild(i)
	}
}

// AppendChild adds item as the last child
func (i *Item) AppendChild(item *Item) {
	item.detach()
	item.parent = i
	i.children = append(i.children, item)
}

// InsertChild adds item at index, clamped to the valid range
func (i *Item) InsertChild(index int, item *Item) {
	item.detach()
	if index < 0 {
		index = 0
	}
	if index > len(i.children) {
		index = len(i.children)
	}
	item.parent = i
	i.children = append(i.children[:index], append([]*Item{item}, i.children[index:]...)...)
}

// RemoveChild detaches item from this item
func (i *Item) RemoveChild(item *Item) {
	for index, child := range i.children {
		if child == item {
			i.children = append(i.children[:index], i.children[index+1:]...)
			item.parent = nil
			return
		}
	}
}

// AppendMapItem inserts a dictionary member before the first member with a
// greater key, so members stay sorted by raw key bytes
func (i *Item) AppendMapItem(item *Item) {
	item.detach()
	for index, child := range i.children {
		if bytes.Compare(item.key, child.key) < 0 {
			i.InsertChild(index, item)
			return
		}
	}
	i.AppendChild(item)
}

// Ensure returns the dictionary member stored under key, replacing it with a
// fresh item when it is missing or holds another type
func (i *Item) Ensure(t Type, key string) *Item {
	item := i.Get(key)
	if item != nil && item.typ == t {
		return item
	}
	if item != nil {
		i.RemoveChild(item)
	}
	item = New(t, key)
	if IsHexKey(key) {
		item.hex = true
	}
	i.AppendMapItem(item)
	return item
}

// Equal compares two trees by type, value and, for dictionary members, key
func (i *Item) Equal(other *Item) bool {
	if other == nil {
		return false
	}
	if i.typ != other.typ {
		return false
	}
	if i.parent != nil && i.parent.typ == Dictionary && other.parent != nil && !bytes.Equal(i.key, other.key) {
		return false
	}

	switch i.typ {
	case String:
		return bytes.Equal(i.str, other.str)
	case Integer:
		return i.integer == other.integer
	case List, Dictionary:
		if len(i.children) != len(other.children) {
			return false
		}
		for index, child := range i.children {
			if !child.Equal(other.children[index]) {
				return false
			}
		}
	}
	return true
}

// Clone deep copies the item. The copy has no parent.
func (i *Item) Clone() *Item {
	clone := &Item{
		typ:     i.typ,
		integer: i.integer,
		str:     append([]byte(nil), i.str...),
		key:     append([]byte(nil), i.key...),
		hex:     i.hex,
	}
	for _, child := range i.children {
		clone.AppendChild(child.Clone())
	}
	return clone
}

// Describe is a short human readable summary, used in logs
func (i *Item) Describe() string {
	res := ""
	if len(i.key) > 0 {
		res = "key " + string(i.key) + " | "
	}
	switch i.typ {
	case Integer:
		res += "integer " + strconv.FormatInt(i.integer, 10)
	case String:
		res += "string " + EscapeRaw(i.str)
	default:
		res += i.typ.String()
	}
	if runes := []rune(res); len(runes) > 300 {
		res = string(runes[:300])
	}
	return res
}
