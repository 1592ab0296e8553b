package lexer

import (
	"fluentkit/internal/diag"
	"fluentkit/internal/token"
)

// scanResource работает только в начале строки.
func (lx *Lexer) scanResource() (token.Token, bool) {
	if lx.cursor.EOF() {
		return lx.eof(), true
	}
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	switch {
	case isIdentStartByte(b):
		tok := lx.scanIdent()
		lx.top().mode = modeEntryEq
		return tok, true

	case b == '-':
		lx.cursor.Bump()
		lx.top().mode = modeEntryIdent
		return lx.emit(token.Minus, start), true

	case b == '#':
		level := 0
		for level < 3 && lx.cursor.Eat('#') {
			level++
		}
		lx.top().mode = modeComment
		kind := [...]token.Kind{token.CommentSign, token.GroupCommentSign, token.ResourceCommentSign}[level-1]
		return lx.emit(kind, start), true
	}

	// пустая строка или мусор
	lx.cursor.SkipSpaces()
	if lx.cursor.EOF() {
		// хвостовые пробелы в конце файла ничего не значат
		return lx.eof(), true
	}
	if lx.cursor.Eat('\n') {
		return lx.emit(token.Newline, start), true
	}
	lx.cursor.Reset(start)
	lx.cursor.Off = lx.nextEntryStart(lx.cursor.Off)
	tok := lx.emit(token.Junk, start)
	lx.report(diag.LexJunk, diag.SevError, tok.Span, "expected a message, term or comment")
	return tok, true
}

// scanCommentLine выдаёт текст одной строки комментария и съедает её '\n'.
func (lx *Lexer) scanCommentLine() (token.Token, bool) {
	if lx.cursor.EOF() {
		lx.top().mode = modeResource
		return token.Token{Kind: token.CommentText, Span: lx.emptySpan()}, true
	}
	switch lx.cursor.Peek() {
	case '\n':
		tok := token.Token{Kind: token.CommentText, Span: lx.emptySpan()}
		lx.cursor.Bump()
		lx.top().mode = modeResource
		return tok, true
	case ' ':
		lx.cursor.Bump()
		start := lx.cursor.Mark()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.CommentText, start)
		lx.cursor.Eat('\n')
		lx.top().mode = modeResource
		return tok, true
	}
	start := lx.cursor.Mark()
	lx.bumpRune()
	return lx.invalid(token.ProblemCommentSpace, start, "expected a space after the comment marker"), true
}

// scanEntryIdent: идентификатор должен идти вплотную к '-' или '.'.
func (lx *Lexer) scanEntryIdent() (token.Token, bool) {
	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.unexpected("expected an identifier"), true
	}
	tok := lx.scanIdent()
	lx.top().mode = modeEntryEq
	return tok, true
}

func (lx *Lexer) scanEntryEq() (token.Token, bool) {
	var flags token.Flags
	if lx.cursor.SkipSpaces() > 0 {
		flags |= token.FlagSpaceBefore
	}
	if lx.cursor.Peek() != '=' {
		return lx.unexpected("expected '='"), true
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	tok := lx.emit(token.Equals, start)
	tok.Flags = flags
	*lx.top() = frame{mode: modePattern, ctx: ctxEntry}
	lx.beginPattern()
	return tok, true
}
