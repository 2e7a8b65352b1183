package bencode

import (
	"bytes"
	"fmt"
	"strconv"
)

// SyntaxError describes malformed bencoded input
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

// Decode parses raw bencoded data. Empty input decodes to a nil item and no
// error. Bytes following the first complete item are ignored.
func Decode(raw []byte) (*Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	d := &decoder{raw: raw}
	return d.item()
}

type decoder struct {
	raw []byte
	pos int
}

func (d *decoder) errorf(offset int, format string, args ...interface{}) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) item() (*Item, error) {
	if d.pos >= len(d.raw) {
		return nil, d.errorf(d.pos, "unexpected end of data")
	}

	c := d.raw[d.pos]
	switch {
	case c == 'i':
		return d.integer()
	case c >= '0' && c <= '9':
		b, err := d.str()
		if err != nil {
			return nil, err
		}
		return NewString(b, ""), nil
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dictionary()
	}
	return nil, d.errorf(d.pos, "unexpected character %q", c)
}

func (d *decoder) integer() (*Item, error) {
	start := d.pos
	d.pos++
	end := bytes.IndexByte(d.raw[d.pos:], 'e')
	if end == -1 {
		return nil, d.errorf(start, "unterminated integer")
	}
	end += d.pos

	digits := d.raw[d.pos:end]
	for index, c := range digits {
		if (c >= '0' && c <= '9') || (index == 0 && c == '-') {
			continue
		}
		return nil, d.errorf(d.pos+index, "invalid character %q in integer", c)
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, d.errorf(start, "invalid integer %q", digits)
	}
	d.pos = end + 1
	return NewInteger(n, ""), nil
}

func (d *decoder) str() ([]byte, error) {
	start := d.pos
	delimiter := bytes.IndexByte(d.raw[d.pos:], ':')
	if delimiter == -1 {
		return nil, d.errorf(start, "missing string length delimiter")
	}
	delimiter += d.pos

	lengthDigits := d.raw[d.pos:delimiter]
	for index, c := range lengthDigits {
		if c < '0' || c > '9' {
			return nil, d.errorf(d.pos+index, "invalid character %q in string length", c)
		}
	}
	size, err := strconv.Atoi(string(lengthDigits))
	if err != nil {
		return nil, d.errorf(start, "invalid string length %q", lengthDigits)
	}

	begin := delimiter + 1
	if size > len(d.raw)-begin {
		return nil, d.errorf(start, "string of length %d exceeds data", size)
	}
	d.pos = begin + size
	return d.raw[begin:d.pos:d.pos], nil
}

func (d *decoder) list() (*Item, error) {
	start := d.pos
	d.pos++
	res := New(List, "")
	for {
		if d.pos >= len(d.raw) {
			return nil, d.errorf(start, "unterminated list")
		}
		if d.raw[d.pos] == 'e' {
			break
		}
		item, err := d.item()
		if err != nil {
			return nil, err
		}
		res.AppendChild(item)
	}
	d.pos++
	return res, nil
}

func (d *decoder) dictionary() (*Item, error) {
	start := d.pos
	d.pos++
	res := New(Dictionary, "")
	for {
		if d.pos >= len(d.raw) {
			return nil, d.errorf(start, "unterminated dictionary")
		}
		if d.raw[d.pos] == 'e' {
			break
		}
		if c := d.raw[d.pos]; c < '0' || c > '9' {
			return nil, d.errorf(d.pos, "dictionary key must be a string, got %q", c)
		}
		key, err := d.str()
		if err != nil {
			return nil, err
		}
		value, err := d.item()
		if err != nil {
			return nil, err
		}
		value.key = append([]byte(nil), key...)
		if IsHexKey(string(key)) {
			value.hex = true
		}
		res.AppendMapItem(value)
	}
	d.pos++
	return res, nil
}
