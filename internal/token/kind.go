package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; see Token.Problem.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Junk covers lines that cannot start an entry, up to the next entry start.
	Junk
	// Newline is a blank line between entries.
	Newline

	// CommentSign is '#'.
	CommentSign
	// GroupCommentSign is '##'.
	GroupCommentSign
	// ResourceCommentSign is '###'.
	ResourceCommentSign
	// CommentText is the content of one comment line, without the marker and the space.
	CommentText

	// Ident is an identifier: [A-Za-z][A-Za-z0-9_-]*.
	Ident
	// Text is a run of pattern text.
	Text
	// String is a quoted string literal including quotes.
	String
	// Number is a number literal: -?[0-9]+(\.[0-9]+)?
	Number

	Minus    // -
	Equals   // =
	Dot      // .
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	LParen   // (
	RParen   // )
	Star     // *
	Arrow    // ->
	Comma    // ,
	Colon    // :
	Dollar   // $
)

var kindNames = [...]string{
	Invalid:             "Invalid",
	EOF:                 "EOF",
	Junk:                "Junk",
	Newline:             "Newline",
	CommentSign:         "CommentSign",
	GroupCommentSign:    "GroupCommentSign",
	ResourceCommentSign: "ResourceCommentSign",
	CommentText:         "CommentText",
	Ident:               "Ident",
	Text:                "Text",
	String:              "String",
	Number:              "Number",
	Minus:               "Minus",
	Equals:              "Equals",
	Dot:                 "Dot",
	LBrace:              "LBrace",
	RBrace:              "RBrace",
	LBracket:            "LBracket",
	RBracket:            "RBracket",
	LParen:              "LParen",
	RParen:              "RParen",
	Star:                "Star",
	Arrow:               "Arrow",
	Comma:               "Comma",
	Colon:               "Colon",
	Dollar:              "Dollar",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsCommentSign reports whether k is one of the three comment markers.
func (k Kind) IsCommentSign() bool {
	return k == CommentSign || k == GroupCommentSign || k == ResourceCommentSign
}

// CommentLevel returns 1..3 for comment markers and 0 otherwise.
func (k Kind) CommentLevel() int {
	switch k {
	case CommentSign:
		return 1
	case GroupCommentSign:
		return 2
	case ResourceCommentSign:
		return 3
	}
	return 0
}

// Problem describes why the lexer produced an Invalid token.
type Problem uint8

const (
	ProblemNone Problem = iota
	// ProblemUnexpectedChar: byte cannot start a token in the current mode.
	ProblemUnexpectedChar
	// ProblemUnbalancedBrace: '}' inside pattern text.
	ProblemUnbalancedBrace
	// ProblemUnknownEscape: backslash followed by an unsupported character.
	ProblemUnknownEscape
	// ProblemInvalidUnicodeEscape: \u or \U without enough hex digits.
	ProblemInvalidUnicodeEscape
	// ProblemUnterminatedString: line feed inside a string literal.
	ProblemUnterminatedString
	// ProblemMissingQuote: string literal runs to the end of input.
	ProblemMissingQuote
	// ProblemExpectedDigit: '-' or '.' in a number not followed by a digit.
	ProblemExpectedDigit
	// ProblemCommentSpace: comment marker not followed by a space or a line end.
	ProblemCommentSpace
)

func (p Problem) String() string {
	switch p {
	case ProblemNone:
		return "none"
	case ProblemUnexpectedChar:
		return "unexpected character"
	case ProblemUnbalancedBrace:
		return "unbalanced closing brace"
	case ProblemUnknownEscape:
		return "unknown escape sequence"
	case ProblemInvalidUnicodeEscape:
		return "invalid unicode escape sequence"
	case ProblemUnterminatedString:
		return "unterminated string"
	case ProblemMissingQuote:
		return "missing closing quote"
	case ProblemExpectedDigit:
		return "expected digit"
	case ProblemCommentSpace:
		return "expected space after comment marker"
	}
	return "unknown"
}
