package parser

import (
	"strings"

	"fluentkit/internal/ast"
	"fluentkit/internal/token"
)

// parseExpression: InlineExpression или select "sel -> variants".
func (p *Parser) parseExpression() (ast.Expression, *Error) {
	sel, err := p.parseInlineExpression()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Arrow) {
		return sel, nil
	}
	arrow := p.lx.Next()
	if kind, bad := selectorError(sel); bad {
		return nil, p.errAt(arrow, kind, "")
	}

	variants, err := p.parseVariants()
	if err != nil {
		return nil, err
	}
	se := &ast.SelectExpression{Selector: sel, Variants: variants}
	se.Span = p.span(sel.Pos().Start, variants[len(variants)-1].Span.End)
	return se, nil
}

// selectorError: что нельзя ставить перед '->'.
func selectorError(sel ast.InlineExpression) (ErrorKind, bool) {
	switch sel := sel.(type) {
	case *ast.MessageReference:
		if sel.Attribute != nil {
			return MessageAttributeAsSelector, true
		}
		return MessageReferenceAsSelector, true
	case *ast.TermReference:
		if sel.Attribute == nil {
			return TermReferenceAsSelector, true
		}
	case *ast.Placeable:
		return ExpectedSimpleExpressionAsSelector, true
	}
	return Generic, false
}

func (p *Parser) parseVariants() ([]*ast.Variant, *Error) {
	if first := p.lx.Peek(); !first.Has(token.FlagNewlineBefore) {
		return nil, p.errAt(first, ExpectedToken, "\n")
	}

	var (
		variants   []*ast.Variant
		hasDefault bool
	)
	for {
		tok := p.lx.Peek()
		if tok.Kind != token.Star && tok.Kind != token.LBracket {
			break
		}
		p.lx.Next()

		v := &ast.Variant{}
		if tok.Kind == token.Star {
			if hasDefault {
				return nil, p.errAt(tok, MultipleDefaultVariants, "")
			}
			hasDefault, v.Default = true, true
			if _, err := p.expectAdjacent(token.LBracket, ExpectedToken, "["); err != nil {
				return nil, err
			}
		}

		key, err := p.parseVariantKey()
		if err != nil {
			return nil, err
		}
		v.Key = key
		if _, err = p.expect(token.RBracket, ExpectedToken, "]"); err != nil {
			return nil, err
		}

		if v.Value, err = p.parsePattern(); err != nil {
			return nil, err
		}
		if v.Value == nil {
			return nil, p.errAt(p.lx.Peek(), MissingValue, "")
		}
		v.Span = p.span(tok.Span.Start, v.Value.Span.End)
		variants = append(variants, v)
	}

	if len(variants) == 0 {
		return nil, p.errAt(p.lx.Peek(), MissingVariants, "")
	}
	if !hasDefault {
		return nil, p.errAt(p.lx.Peek(), MissingDefaultVariant, "")
	}
	return variants, nil
}

func (p *Parser) parseVariantKey() (ast.VariantKey, *Error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Number:
		p.lx.Next()
		n := &ast.NumberLiteral{Value: tok.Text}
		n.Span = tok.Span
		return n, nil
	case token.Ident:
		p.lx.Next()
		return p.ident(tok), nil
	case token.RBracket:
		return nil, p.errAt(tok, MissingVariantKey, "")
	}
	p.lx.Next()
	return nil, p.unexpected(tok, ExpectedCharRange, "a-zA-Z")
}

func (p *Parser) parseInlineExpression() (ast.InlineExpression, *Error) {
	tok := p.lx.Next()
	switch tok.Kind {
	case token.String:
		s := &ast.StringLiteral{Value: tok.Text[1 : len(tok.Text)-1]}
		s.Span = tok.Span
		return s, nil

	case token.Number:
		n := &ast.NumberLiteral{Value: tok.Text}
		n.Span = tok.Span
		return n, nil

	case token.Dollar:
		idTok, err := p.expectAdjacent(token.Ident, ExpectedCharRange, "a-zA-Z")
		if err != nil {
			return nil, err
		}
		v := &ast.VariableReference{ID: p.ident(idTok)}
		v.Span = p.span(tok.Span.Start, idTok.Span.End)
		return v, nil

	case token.Minus:
		return p.parseTermReference(tok)

	case token.Ident:
		return p.parseIdentExpression(tok)

	case token.LBrace:
		pl, err := p.parsePlaceable(tok)
		if err != nil {
			return nil, err
		}
		return pl, nil

	case token.Invalid:
		return nil, p.unexpected(tok, ExpectedInlineExpression, "")
	}
	return nil, p.errAt(tok, ExpectedInlineExpression, "")
}

// parseTermReference: -id, -id.attr, -id(args), -id.attr(args)
func (p *Parser) parseTermReference(minus token.Token) (ast.InlineExpression, *Error) {
	idTok, err := p.expectAdjacent(token.Ident, ExpectedCharRange, "a-zA-Z")
	if err != nil {
		return nil, err
	}
	ref := &ast.TermReference{ID: p.ident(idTok)}
	end := idTok.Span.End

	if attr, ok, err := p.parseAttributeAccessor(); err != nil {
		return nil, err
	} else if ok {
		ref.Attribute, end = attr, attr.Span.End
	}
	if next := p.lx.Peek(); next.Kind == token.LBracket {
		return nil, p.errAt(next, ForbiddenVariantAccessor, "")
	}
	if next := p.lx.Peek(); next.Kind == token.LParen && next.Adjacent() {
		p.lx.Next()
		args, err := p.parseCallArguments(next)
		if err != nil {
			return nil, err
		}
		ref.Arguments, end = args, args.Span.End
	}
	ref.Span = p.span(minus.Span.Start, end)
	return ref, nil
}

// parseIdentExpression: FUNC(args), msg или msg.attr
func (p *Parser) parseIdentExpression(idTok token.Token) (ast.InlineExpression, *Error) {
	id := p.ident(idTok)

	if next := p.lx.Peek(); next.Kind == token.LParen && next.Adjacent() {
		if !isCallee(id.Name) {
			return nil, p.errAt(next, ForbiddenCallee, "")
		}
		p.lx.Next()
		args, err := p.parseCallArguments(next)
		if err != nil {
			return nil, err
		}
		fn := &ast.FunctionReference{ID: id, Arguments: args}
		fn.Span = p.span(idTok.Span.Start, args.Span.End)
		return fn, nil
	}

	ref := &ast.MessageReference{ID: id}
	ref.Span = idTok.Span
	attr, ok, err := p.parseAttributeAccessor()
	if err != nil {
		return nil, err
	}
	if ok {
		ref.Attribute = attr
		ref.Span.End = attr.Span.End
		if next := p.lx.Peek(); next.Kind == token.LParen && next.Adjacent() {
			return nil, p.errAt(next, ForbiddenCallee, "")
		}
	}
	return ref, nil
}

// isCallee: имя функции не содержит строчных ASCII-букв.
func isCallee(name string) bool {
	return !strings.ContainsFunc(name, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

// parseAttributeAccessor съедает ".name" вплотную к ссылке.
func (p *Parser) parseAttributeAccessor() (*ast.Identifier, bool, *Error) {
	dot := p.lx.Peek()
	if dot.Kind != token.Dot || !dot.Adjacent() {
		return nil, false, nil
	}
	p.lx.Next()
	idTok, err := p.expectAdjacent(token.Ident, ExpectedCharRange, "a-zA-Z")
	if err != nil {
		return nil, false, err
	}
	return p.ident(idTok), true, nil
}

// parseCallArguments: '(' уже съеден. Позиционные аргументы идут до именованных,
// значение именованного аргумента: только литерал.
func (p *Parser) parseCallArguments(lp token.Token) (*ast.CallArguments, *Error) {
	args := &ast.CallArguments{}
	seen := make(map[string]struct{})

	for {
		tok := p.lx.Peek()
		if tok.Kind == token.RParen || tok.Kind == token.EOF {
			break
		}
		expr, err := p.parseInlineExpression()
		if err != nil {
			return nil, err
		}

		if ref, ok := expr.(*ast.MessageReference); ok && ref.Attribute == nil && p.at(token.Colon) {
			p.lx.Next()
			name := ref.ID
			if _, dup := seen[name.Name]; dup {
				return nil, p.errAt(tok, DuplicatedNamedArgument, name.Name)
			}
			seen[name.Name] = struct{}{}

			valTok := p.lx.Peek()
			val, err := p.parseInlineExpression()
			if err != nil {
				return nil, err
			}
			lit, ok := val.(ast.Literal)
			if !ok {
				return nil, p.errAt(valTok, MissingLiteral, "")
			}
			na := &ast.NamedArgument{Name: name, Value: lit}
			na.Span = p.span(name.Span.Start, lit.Pos().End)
			args.Named = append(args.Named, na)
		} else {
			if len(args.Named) > 0 {
				return nil, p.errAt(tok, PositionalArgumentFollowsNamed, "")
			}
			args.Positional = append(args.Positional, expr)
		}

		if !p.at(token.Comma) {
			break
		}
		p.lx.Next()
	}

	rp, err := p.expect(token.RParen, ExpectedToken, ")")
	if err != nil {
		return nil, err
	}
	args.Span = p.span(lp.Span.Start, rp.Span.End)
	return args, nil
}
