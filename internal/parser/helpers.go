package parser

import (
	"fmt"

	"fluentkit/internal/ast"
	"fluentkit/internal/source"
	"fluentkit/internal/token"

	"fortio.org/safecast"
)

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) eofOffset() uint32 {
	n, err := safecast.Conv[uint32](len(p.file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return n
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) ident(tok token.Token) *ast.Identifier {
	id := &ast.Identifier{Name: tok.Text}
	id.Span = tok.Span
	return id
}

// errAt: ошибка в начале токена tok; восстановление начнётся оттуда же.
func (p *Parser) errAt(tok token.Token, kind ErrorKind, arg string) *Error {
	pos := p.span(tok.Span.Start, tok.Span.Start)
	if tok.Kind != token.EOF && pos.End < p.eofOffset() {
		pos.End++
	}
	return &Error{Kind: kind, Arg: arg, Pos: pos, resume: tok.Span.Start}
}

// unexpected: если лексер уже знает, что не так (Invalid с проблемой), берём
// его диагноз, иначе ошибку kind/arg ожидания вызывающего.
func (p *Parser) unexpected(tok token.Token, kind ErrorKind, arg string) *Error {
	if tok.Kind != token.Invalid {
		return p.errAt(tok, kind, arg)
	}
	switch tok.Problem {
	case token.ProblemUnbalancedBrace:
		return p.errAt(tok, UnbalancedClosingBrace, "")
	case token.ProblemUnknownEscape:
		return p.errAt(tok, UnknownEscapeSequence, tok.Text)
	case token.ProblemInvalidUnicodeEscape:
		return p.errAt(tok, InvalidUnicodeEscapeSequence, tok.Text)
	case token.ProblemUnterminatedString, token.ProblemMissingQuote:
		err := p.errAt(tok, UnterminatedStringExpression, "")
		err.Pos = tok.Span
		return err
	case token.ProblemExpectedDigit:
		return p.errAt(tok, ExpectedCharRange, "0-9")
	case token.ProblemCommentSpace:
		return p.errAt(tok, ExpectedToken, " ")
	}
	return p.errAt(tok, kind, arg)
}

// expect съедает токен вида k или возвращает ошибку ожидания.
func (p *Parser) expect(k token.Kind, kind ErrorKind, arg string) (token.Token, *Error) {
	tok := p.lx.Next()
	if tok.Kind != k {
		return tok, p.unexpected(tok, kind, arg)
	}
	return tok, nil
}

// expectAdjacent: как expect, но без пробелов перед токеном.
func (p *Parser) expectAdjacent(k token.Kind, kind ErrorKind, arg string) (token.Token, *Error) {
	tok, err := p.expect(k, kind, arg)
	if err == nil && !tok.Adjacent() {
		return tok, p.errAt(tok, kind, arg)
	}
	return tok, err
}
