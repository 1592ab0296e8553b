package lexer

import (
	"fluentkit/internal/token"
)

// beginPattern пропускает пробелы после '=' или ']'. Если значение начинается
// со следующей строки, съедает пустые строки и ставит роль LineStart.
func (lx *Lexer) beginPattern() {
	lx.cursor.SkipSpaces()
	f := lx.top()
	if !lx.cursor.Eat('\n') {
		f.role = roleInitial
		return
	}
	lx.skipBlankLines()
	f.role = roleLineStart
}

// skipBlankLines съедает строки, состоящие только из пробелов и '\n'.
func (lx *Lexer) skipBlankLines() {
	for {
		mark := lx.cursor.Mark()
		lx.cursor.SkipSpaces()
		if !lx.cursor.Eat('\n') {
			lx.cursor.Reset(mark)
			return
		}
	}
}

// scanPattern выдаёт Text и LBrace. Dedent и обрезку хвоста делает парсер.
func (lx *Lexer) scanPattern() (token.Token, bool) {
	f := lx.top()
	if lx.cursor.EOF() {
		return lx.endPattern()
	}

	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '{' {
		var flags token.Flags
		if f.role == roleLineStart {
			flags = token.FlagLineStart
		}
		f.role = roleContinuation
		lx.cursor.Bump()
		tok := lx.emit(token.LBrace, start)
		tok.Flags = flags
		lx.push(frame{mode: modeExpr})
		return tok, true
	}

	var indent uint32
	if f.role == roleLineStart {
		indent = lx.cursor.SkipSpaces()
		if lx.cursor.EOF() {
			return lx.endPattern()
		}
		b := lx.cursor.Peek()
		if indent == 0 && b != '\n' {
			return lx.endPattern()
		}
		if indent > 0 && isSpecialLineStart(b) {
			lx.cursor.Reset(start)
			return lx.endPattern()
		}
	}

	blank, lineFeed := true, false
scan:
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			lx.cursor.Bump()
		case '\n':
			lx.cursor.Bump()
			lineFeed = true
			break scan
		case '{':
			break scan
		case '}':
			brace := lx.cursor.Mark()
			lx.cursor.Bump()
			return lx.invalid(token.ProblemUnbalancedBrace, brace, "unbalanced closing brace in text"), true
		default:
			blank = false
			lx.bumpRune()
		}
	}

	tok := lx.emit(token.Text, start)
	tok.Indent = indent
	switch f.role {
	case roleInitial:
		tok.Flags |= token.FlagInitial
	case roleLineStart:
		tok.Flags |= token.FlagLineStart
	}
	if blank {
		tok.Flags |= token.FlagBlank
	}
	if lineFeed {
		tok.Flags |= token.FlagLineFeed
		f.role = roleLineStart
	} else {
		f.role = roleContinuation
	}
	return tok, true
}

// endPattern закрывает текущий шаблон. Значение варианта возвращает в список
// вариантов; после значения записи ищет строку атрибута.
func (lx *Lexer) endPattern() (token.Token, bool) {
	if lx.top().ctx == ctxVariant {
		lx.pop()
		return token.Token{}, false
	}
	lx.skipBlankLines()
	lineStart := lx.cursor.Mark()
	indent := lx.cursor.SkipSpaces()
	if lx.cursor.Peek() == '.' {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok := lx.emit(token.Dot, start)
		tok.Indent = indent
		lx.setBase(modeEntryIdent)
		return tok, true
	}
	lx.cursor.Reset(lineStart)
	lx.setBase(modeResource)
	return token.Token{}, false
}
