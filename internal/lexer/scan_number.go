package lexer

import (
	"fluentkit/internal/token"
)

// scanNumber: -?[0-9]+(\.[0-9]+)?
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('-')
	if !lx.skipDigits() {
		return lx.invalid(token.ProblemExpectedDigit, start, "expected a digit")
	}
	if lx.cursor.Eat('.') && !lx.skipDigits() {
		return lx.invalid(token.ProblemExpectedDigit, start, "expected a digit after '.'")
	}
	return lx.emit(token.Number, start)
}

func (lx *Lexer) skipDigits() bool {
	n := 0
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n > 0
}
