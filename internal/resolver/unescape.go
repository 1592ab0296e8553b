package resolver

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unescape decodes the escapes of a string literal. Invalid code points
// become U+FFFD.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\', '"', '{':
			sb.WriteByte(s[i])
		case 'u', 'U':
			n := 4
			if s[i] == 'U' {
				n = 6
			}
			if i+1+n > len(s) {
				sb.WriteRune(utf8.RuneError)
				i = len(s)
				continue
			}
			cp, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			r := rune(cp)
			if err != nil || !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			sb.WriteRune(r)
			i += n
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
