package bencode

import (
	"bytes"
	"strconv"
)

// Encode serialises the tree. Dictionary members are written in child order;
// invalid items produce no output.
func (i *Item) Encode() []byte {
	var buf bytes.Buffer
	i.encode(&buf)
	return buf.Bytes()
}

func (i *Item) encode(buf *bytes.Buffer) {
	switch i.typ {
	case Integer:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(i.integer, 10))
		buf.WriteByte('e')

	case String:
		writeString(buf, i.str)

	case List:
		buf.WriteByte('l')
		for _, child := range i.children {
			child.encode(buf)
		}
		buf.WriteByte('e')

	case Dictionary:
		buf.WriteByte('d')
		for _, child := range i.children {
			writeString(buf, child.key)
			child.encode(buf)
		}
		buf.WriteByte('e')
	}
}

func writeString(buf *bytes.Buffer, b []byte) {
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteByte(':')
	buf.Write(b)
}
