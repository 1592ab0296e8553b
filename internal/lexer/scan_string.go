package lexer

import (
	"fluentkit/internal/token"
)

// scanString читает "..." целиком. Допустимые escape: \\ \" \{ \uXXXX \UXXXXXX.
// Text токена: весь литерал вместе с кавычками; раскрытие escape делает резолвер.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.String, start)
		case '\n':
			return lx.invalid(token.ProblemUnterminatedString, start, "newline in string literal")
		case '\\':
			if bad, ok := lx.scanEscape(); !ok {
				return bad
			}
		default:
			lx.bumpRune()
		}
	}
	return lx.invalid(token.ProblemMissingQuote, start, "unterminated string literal")
}

// scanEscape съедает одну escape-последовательность. При ошибке возвращает Invalid
// со span только по проблемному фрагменту.
func (lx *Lexer) scanEscape() (token.Token, bool) {
	esc := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	switch lx.cursor.Peek() {
	case '\\', '"', '{':
		lx.cursor.Bump()
		return token.Token{}, true
	case 'u':
		lx.cursor.Bump()
		return lx.scanUnicodeEscape(4)
	case 'U':
		lx.cursor.Bump()
		return lx.scanUnicodeEscape(6)
	}
	lx.bumpRune()
	return lx.invalid(token.ProblemUnknownEscape, esc, "unknown escape sequence"), false
}

func (lx *Lexer) scanUnicodeEscape(length int) (token.Token, bool) {
	start := lx.cursor.Mark()
	for range length {
		if !isHex(lx.cursor.Peek()) {
			// последовательность плюс первый неверный символ
			lx.bumpRune()
			return lx.invalid(token.ProblemInvalidUnicodeEscape, start, "invalid unicode escape sequence"), false
		}
		lx.cursor.Bump()
	}
	return token.Token{}, true
}
