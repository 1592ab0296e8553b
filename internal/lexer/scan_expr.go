package lexer

import (
	"fluentkit/internal/token"
)

// scanExpr: содержимое плейсхолдера между '{' и '}'.
func (lx *Lexer) scanExpr() (token.Token, bool) {
	flags := lx.skipBlanks()
	if lx.cursor.EOF() {
		return lx.eof(), true
	}
	tok, ok := lx.scanExprToken()
	tok.Flags |= flags
	return tok, ok
}

func (lx *Lexer) scanExprToken() (token.Token, bool) {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	switch {
	case b == '"':
		return lx.scanString(), true
	case isDec(b):
		return lx.scanNumber(), true
	case isIdentStartByte(b):
		return lx.scanIdent(), true
	}

	switch b {
	case '-':
		next := lx.cursor.PeekAt(1)
		switch {
		case isIdentStartByte(next):
			lx.cursor.Bump()
			return lx.emit(token.Minus, start), true
		case next == '>':
			lx.cursor.Off += 2
			lx.push(frame{mode: modeVariants})
			return lx.emit(token.Arrow, start), true
		}
		return lx.scanNumber(), true
	case '{':
		lx.cursor.Bump()
		lx.push(frame{mode: modeExpr})
		return lx.emit(token.LBrace, start), true
	case '}':
		lx.cursor.Bump()
		lx.pop()
		return lx.emit(token.RBrace, start), true
	}

	kind, ok := exprPunct[b]
	if !ok {
		return lx.unexpected("unexpected character in placeable"), true
	}
	lx.cursor.Bump()
	return lx.emit(kind, start), true
}

var exprPunct = map[byte]token.Kind{
	'$': token.Dollar,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	':': token.Colon,
	'[': token.LBracket,
	'*': token.Star,
}

// scanVariants: между вариантами select-выражения.
func (lx *Lexer) scanVariants() (token.Token, bool) {
	flags := lx.skipBlanks()
	if lx.cursor.EOF() {
		return lx.eof(), true
	}
	start := lx.cursor.Mark()
	var tok token.Token
	switch lx.cursor.Peek() {
	case '*':
		lx.cursor.Bump()
		tok = lx.emit(token.Star, start)
	case '[':
		lx.cursor.Bump()
		tok = lx.emit(token.LBracket, start)
		lx.push(frame{mode: modeKey})
	case '}':
		lx.cursor.Bump()
		tok = lx.emit(token.RBrace, start)
		lx.pop() // variants
		lx.pop() // expr
	default:
		tok = lx.unexpected("expected a variant")
	}
	tok.Flags |= flags
	return tok, true
}

// scanKey: ключ варианта внутри '[...]'.
func (lx *Lexer) scanKey() (token.Token, bool) {
	flags := lx.skipBlanks()
	if lx.cursor.EOF() {
		return lx.eof(), true
	}
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	var tok token.Token
	switch {
	case b == '-' || isDec(b):
		tok = lx.scanNumber()
	case isIdentStartByte(b):
		tok = lx.scanIdent()
	case b == ']':
		lx.cursor.Bump()
		tok = lx.emit(token.RBracket, start)
		*lx.top() = frame{mode: modePattern, ctx: ctxVariant}
		lx.beginPattern()
	default:
		tok = lx.unexpected("expected a variant key")
	}
	tok.Flags |= flags
	return tok, true
}
