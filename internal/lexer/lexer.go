package lexer

import (
	"fluentkit/internal/diag"
	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

// mode: что лексер ожидает в текущей позиции.
type mode uint8

const (
	modeResource   mode = iota // начало строки верхнего уровня
	modeComment                // после '#', '##', '###'
	modeEntryIdent             // идентификатор сразу после '-' или '.'
	modeEntryEq                // пробелы и '=' после идентификатора
	modePattern                // текст шаблона
	modeExpr                   // внутри '{ ... }'
	modeVariants               // после '->'
	modeKey                    // внутри '[ ... ]'
	modeRecover                // после Invalid: выдать Junk до следующей записи
)

type patternCtx uint8

const (
	ctxEntry   patternCtx = iota // значение сообщения, термина или атрибута
	ctxVariant                   // значение варианта select-выражения
)

type lineRole uint8

const (
	roleInitial lineRole = iota
	roleLineStart
	roleContinuation
)

type frame struct {
	mode mode
	ctx  patternCtx
	role lineRole
}

// Lexer turns an FTL resource into tokens. It never fails and keeps returning EOF
// once input is exhausted.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	stack  []frame      // stack[0]: режим верхнего уровня
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		stack:  make([]frame, 1, 8),
	}
	return lx
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Offset returns the current byte offset (after any peeked token).
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// Reset restarts lexing from the beginning of the file.
func (lx *Lexer) Reset() {
	lx.RestartLine(0)
}

// RestartLine drops lookahead and resumes in top-level mode at off, which must be a line start.
func (lx *Lexer) RestartLine(off uint32) {
	lx.look = nil
	lx.stack = lx.stack[:1]
	lx.stack[0] = frame{mode: modeResource}
	lx.cursor.Off = min(off, lx.cursor.Limit)
}

// SkipToNextEntry resynchronizes after a syntax error: starting at from, it moves to the
// next line that begins with a letter, '-' or '#'. Returns the new offset.
func (lx *Lexer) SkipToNextEntry(from uint32) uint32 {
	lx.RestartLine(from)
	lx.cursor.Off = lx.nextEntryStart(lx.cursor.Off)
	return lx.cursor.Off
}

func (lx *Lexer) nextEntryStart(off uint32) uint32 {
	content, n := lx.file.Content, lx.cursor.Limit
	for off < n {
		if (off == 0 || content[off-1] == '\n') && isEntryStartByte(content[off]) {
			break
		}
		off++
		for off < n && content[off-1] != '\n' {
			off++
		}
	}
	return off
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		var (
			tok token.Token
			ok  bool
		)
		switch lx.top().mode {
		case modeResource:
			tok, ok = lx.scanResource()
		case modeComment:
			tok, ok = lx.scanCommentLine()
		case modeEntryIdent:
			tok, ok = lx.scanEntryIdent()
		case modeEntryEq:
			tok, ok = lx.scanEntryEq()
		case modePattern:
			tok, ok = lx.scanPattern()
		case modeExpr:
			tok, ok = lx.scanExpr()
		case modeVariants:
			tok, ok = lx.scanVariants()
		case modeKey:
			tok, ok = lx.scanKey()
		case modeRecover:
			tok, ok = lx.scanRecover()
		}
		// ok == false: режим сменился без токена, повторяем
		if ok {
			return tok
		}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) top() *frame {
	return &lx.stack[len(lx.stack)-1]
}

func (lx *Lexer) push(f frame) {
	lx.stack = append(lx.stack, f)
}

func (lx *Lexer) pop() {
	if len(lx.stack) > 1 {
		lx.stack = lx.stack[:len(lx.stack)-1]
		return
	}
	lx.stack[0] = frame{mode: modeResource}
}

func (lx *Lexer) setBase(m mode) {
	lx.stack = lx.stack[:1]
	lx.stack[0] = frame{mode: m}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) eof() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
}

// invalid выдаёт Invalid и переводит лексер в режим восстановления.
func (lx *Lexer) invalid(p token.Problem, start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	tok.Problem = p
	lx.report(problemCode(p), diag.SevError, tok.Span, msg)
	lx.setBase(modeRecover)
	return tok
}

// unexpected оборачивает текущую руну (или пустой span на EOF) в Invalid.
func (lx *Lexer) unexpected(msg string) token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return lx.invalid(token.ProblemUnexpectedChar, start, msg)
}

// skipBlanks пропускает пробелы и переводы строк внутри выражений.
func (lx *Lexer) skipBlanks() token.Flags {
	var flags token.Flags
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			flags |= token.FlagSpaceBefore
		case '\n':
			flags |= token.FlagSpaceBefore | token.FlagNewlineBefore
		default:
			return flags
		}
		lx.cursor.Bump()
	}
	return flags
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Ident, start)
}

func (lx *Lexer) scanRecover() (token.Token, bool) {
	start := lx.cursor.Mark()
	end := lx.nextEntryStart(lx.cursor.Off)
	lx.setBase(modeResource)
	if end == lx.cursor.Off {
		return token.Token{}, false
	}
	lx.cursor.Off = end
	return lx.emit(token.Junk, start), true
}

// Snapshot фиксирует полное состояние лексера.
type Snapshot struct {
	off   uint32
	look  *token.Token
	stack []frame
}

// Snapshot saves the lexer state, including a peeked token.
func (lx *Lexer) Snapshot() Snapshot {
	return Snapshot{off: lx.cursor.Off, look: lx.look, stack: append([]frame(nil), lx.stack...)}
}

// Restore returns the lexer to a previously saved state.
func (lx *Lexer) Restore(s Snapshot) {
	lx.cursor.Off = s.off
	lx.look = s.look
	lx.stack = append(lx.stack[:0], s.stack...)
}
