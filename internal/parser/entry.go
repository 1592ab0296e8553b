package parser

import (
	"fluentkit/internal/ast"
	"fluentkit/internal/token"
)

// parseMessage: Identifier "=" Pattern? Attribute*
func (p *Parser) parseMessage() (ast.Entry, *Error) {
	idTok := p.lx.Next()
	start := idTok.Span.Start
	msg := &ast.Message{ID: p.ident(idTok)}

	eq, err := p.expect(token.Equals, ExpectedToken, "=")
	if err != nil {
		return nil, err
	}
	if msg.Value, err = p.parsePattern(); err != nil {
		return nil, err
	}
	msg.Attributes = p.parseAttributes()

	if msg.Value == nil && len(msg.Attributes) == 0 {
		next := p.lx.Peek()
		return nil, &Error{
			Kind:   ExpectedMessageField,
			Arg:    msg.ID.Name,
			Pos:    p.span(start, max(next.Span.Start, eq.Span.End)),
			resume: next.Span.Start,
		}
	}
	msg.Span = p.span(start, p.entryEnd(eq.Span.End, msg.Value, msg.Attributes))
	return msg, nil
}

// parseTerm: "-" Identifier "=" Pattern Attribute*
func (p *Parser) parseTerm() (ast.Entry, *Error) {
	minus := p.lx.Next()
	start := minus.Span.Start

	idTok, err := p.expectAdjacent(token.Ident, ExpectedCharRange, "a-zA-Z")
	if err != nil {
		return nil, err
	}
	term := &ast.Term{ID: p.ident(idTok)}

	eq, err := p.expect(token.Equals, ExpectedToken, "=")
	if err != nil {
		return nil, err
	}
	if term.Value, err = p.parsePattern(); err != nil {
		return nil, err
	}
	if term.Value == nil {
		next := p.lx.Peek()
		return nil, &Error{
			Kind:   ExpectedTermField,
			Arg:    term.ID.Name,
			Pos:    p.span(start, max(next.Span.Start, eq.Span.End)),
			resume: next.Span.Start,
		}
	}
	term.Attributes = p.parseAttributes()
	term.Span = p.span(start, p.entryEnd(eq.Span.End, term.Value, term.Attributes))
	return term, nil
}

func (p *Parser) entryEnd(end uint32, value *ast.Pattern, attrs []*ast.Attribute) uint32 {
	if value != nil {
		end = value.Span.End
	}
	if n := len(attrs); n > 0 {
		end = attrs[n-1].Span.End
	}
	return end
}

// parseAttributes читает строки вида ".name = value". Сломанный атрибут
// не портит запись: его строка уходит обратно на верхний уровень.
func (p *Parser) parseAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.at(token.Dot) {
		dot := p.lx.Next()
		attr, err := p.parseAttribute(dot)
		if err != nil {
			p.lx.RestartLine(dot.Span.Start - dot.Indent)
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func (p *Parser) parseAttribute(dot token.Token) (*ast.Attribute, *Error) {
	idTok, err := p.expect(token.Ident, ExpectedCharRange, "a-zA-Z")
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(token.Equals, ExpectedToken, "="); err != nil {
		return nil, err
	}
	value, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, p.errAt(p.lx.Peek(), MissingValue, "")
	}
	attr := &ast.Attribute{ID: p.ident(idTok), Value: value}
	attr.Span = p.span(dot.Span.Start, value.Span.End)
	return attr, nil
}

// parseComment собирает подряд идущие строки одного уровня.
func (p *Parser) parseComment() (ast.Entry, *Error) {
	sign := p.lx.Peek()
	c := &ast.Comment{Kind: ast.CommentKind(sign.Kind.CommentLevel())}
	end := sign.Span.End
	for p.at(sign.Kind) {
		p.lx.Next()
		line := p.lx.Next()
		if line.Kind != token.CommentText {
			return nil, p.unexpected(line, ExpectedToken, " ")
		}
		c.Content = append(c.Content, line.Text)
		end = line.Span.End
	}
	c.Span = p.span(sign.Span.Start, end)
	return c, nil
}
