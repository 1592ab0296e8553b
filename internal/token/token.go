package token

import (
	"fluentkit/internal/source"
)

// Flags carry the layout facts the parser needs to reproduce FTL whitespace rules.
type Flags uint8

const (
	// FlagLineStart: Text or LBrace begins a continuation line of a multiline pattern.
	FlagLineStart Flags = 1 << iota
	// FlagInitial: Text is on the same line as the '=' (or ']') that opened the pattern.
	FlagInitial
	// FlagBlank: Text contains only spaces and an optional line feed.
	FlagBlank
	// FlagLineFeed: Text ends with (and includes) '\n'.
	FlagLineFeed
	// FlagSpaceBefore: blanks were skipped right before this token.
	FlagSpaceBefore
	// FlagNewlineBefore: the skipped blanks contained a line feed.
	FlagNewlineBefore
)

// Token represents a single source token with its location.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Flags   Flags
	Indent  uint32 // ширина отступа для Text/Dot в начале строки
	Problem Problem
}

// Has reports whether all bits of f are set.
func (t Token) Has(f Flags) bool { return t.Flags&f == f }

// Adjacent reports whether no blanks separate this token from the previous one.
func (t Token) Adjacent() bool { return t.Flags&(FlagSpaceBefore|FlagNewlineBefore) == 0 }

// IsLiteral reports whether the token is a string or number literal.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Number
}

// IsPunct reports whether the token is structural punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Minus, Equals, Dot, LBrace, RBrace, LBracket, RBracket, LParen, RParen,
		Star, Arrow, Comma, Colon, Dollar:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
