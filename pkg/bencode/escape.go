package bencode

import (
	"encoding/hex"
	"strings"
)

// EscapeRaw turns arbitrary bytes into printable text: printable ASCII other
// than '%' is kept, everything else becomes %hh
func EscapeRaw(raw []byte) string {
	var sb strings.Builder
	for _, c := range raw {
		if c >= ' ' && c <= '~' && c != '%' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}

// UnescapeRaw reverses EscapeRaw. A '%' not followed by two hex digits is
// kept literally.
func UnescapeRaw(s string) []byte {
	res := make([]byte, 0, len(s))
	for index := 0; index < len(s); index++ {
		c := s[index]
		if c == '%' && index+2 < len(s) {
			if b, err := hex.DecodeString(s[index+1 : index+3]); err == nil {
				res = append(res, b[0])
				index += 2
				continue
			}
		}
		res = append(res, c)
	}
	return res
}
