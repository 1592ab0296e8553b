// Package pseudo rewrites text into pseudo-localized look-alikes so untranslated
// or truncated strings stand out during testing.
package pseudo

import (
	"strings"
)

// Strategy выбирает таблицу замен.
type Strategy uint8

const (
	None Strategy = iota
	Accented
	Flipped
)

// ParseStrategy maps "accented" and "flipped"; the empty string is None.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, true
	case "accented":
		return Accented, true
	case "flipped":
		return Flipped, true
	}
	return None, false
}

func (s Strategy) String() string {
	switch s {
	case Accented:
		return "accented"
	case Flipped:
		return "flipped"
	}
	return "none"
}

var (
	accentedSmall = []rune("ȧƀƈḓḗƒɠħīĵķŀḿƞǿƥɋřşŧŭṽẇẋẏẑ")
	accentedCaps  = []rune("ȦƁƇḒḖƑƓĦĪĴĶĿḾȠǾƤɊŘŞŦŬṼẆẊẎẐ")
	flippedSmall  = []rune("ɐqɔpǝɟƃɥıɾʞʅɯuodbɹsʇnʌʍxʎz")
	flippedCaps   = []rune("∀ԐↃᗡƎℲ⅁HIſӼ⅂WNOԀÒᴚS⊥∩ɅＭX⅄Z")
)

const (
	rlo = '\u202E'
	pdf = '\u202C'
)

// Transform pseudo-localizes the ASCII letters of s. Flipped output is
// wrapped in RLO/PDF so it renders right to left.
func Transform(s string, flipped bool) string {
	small, caps := accentedSmall, accentedCaps
	if flipped {
		small, caps = flippedSmall, flippedCaps
	}
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	if flipped {
		sb.WriteRune(rlo)
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(small[r-'a'])
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(caps[r-'A'])
		default:
			sb.WriteRune(r)
		}
	}
	if flipped {
		sb.WriteRune(pdf)
	}
	return sb.String()
}

// Func returns a text transform for the strategy, or nil for None.
func (s Strategy) Func() func(string) string {
	switch s {
	case Accented:
		return func(t string) string { return Transform(t, false) }
	case Flipped:
		return func(t string) string { return Transform(t, true) }
	}
	return nil
}
