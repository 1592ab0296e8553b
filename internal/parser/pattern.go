package parser

import (
	"strings"
	"unicode"

	"fluentkit/internal/ast"
	"fluentkit/internal/token"
)

// piece: элемент шаблона до dedent: текстовый токен или готовый плейсхолдер.
type piece struct {
	text      token.Token
	placeable *ast.Placeable
}

// parsePattern собирает Text и плейсхолдеры текущего шаблона. Общий отступ
// строк считается по непустым строкам и снимается со всех строк сразу.
// Возвращает nil, если в шаблоне нет ничего, кроме пробелов.
func (p *Parser) parsePattern() (*ast.Pattern, *Error) {
	var (
		pieces       []piece
		lastNonBlank = -1
		common       uint32
		hasCommon    bool
	)
	setCommon := func(indent uint32) {
		if !hasCommon || indent < common {
			common, hasCommon = indent, true
		}
	}

loop:
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Text:
			p.lx.Next()
			lineStart := tok.Has(token.FlagLineStart)
			blank := tok.Has(token.FlagBlank)
			if lineStart && !blank {
				setCommon(tok.Indent)
			}
			// пустые строки нужны только как переводы строк
			if !lineStart || !blank || tok.Has(token.FlagLineFeed) {
				if !blank {
					lastNonBlank = len(pieces)
				}
				pieces = append(pieces, piece{text: tok})
			}
		case token.LBrace:
			p.lx.Next()
			if tok.Has(token.FlagLineStart) {
				setCommon(0)
			}
			pl, err := p.parsePlaceable(tok)
			if err != nil {
				return nil, err
			}
			lastNonBlank = len(pieces)
			pieces = append(pieces, piece{placeable: pl})
		case token.Invalid:
			p.lx.Next()
			return nil, p.unexpected(tok, Generic, "")
		default:
			break loop
		}
	}

	if lastNonBlank < 0 {
		return nil, nil
	}
	pieces = pieces[:lastNonBlank+1]

	pat := &ast.Pattern{}
	var last *ast.TextElement
	for i, pc := range pieces {
		if pc.placeable != nil {
			pat.Elements = append(pat.Elements, pc.placeable)
			last = nil
			continue
		}
		tok := pc.text
		value, start := tok.Text, tok.Span.Start
		if tok.Has(token.FlagLineStart) {
			cut := tok.Indent
			if hasCommon {
				cut = min(cut, common)
			}
			value, start = value[cut:], start+cut
		}
		if i == lastNonBlank {
			value = strings.TrimRightFunc(value, unicode.IsSpace)
		}
		end := start + uint32(len(value))
		if last != nil {
			last.Value += value
			last.Span.End = end
			continue
		}
		last = &ast.TextElement{Value: value}
		last.Span = p.span(start, end)
		pat.Elements = append(pat.Elements, last)
	}
	pat.Span = p.span(pat.Elements[0].Pos().Start, pat.Elements[len(pat.Elements)-1].Pos().End)
	return pat, nil
}

// parsePlaceable: '{' уже съеден.
func (p *Parser) parsePlaceable(lb token.Token) (*ast.Placeable, *Error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rb, err := p.expect(token.RBrace, ExpectedToken, "}")
	if err != nil {
		return nil, err
	}
	if tr, ok := expr.(*ast.TermReference); ok && tr.Attribute != nil {
		return nil, p.errAt(rb, TermAttributeAsPlaceable, "")
	}
	pl := &ast.Placeable{Expression: expr}
	pl.Span = p.span(lb.Span.Start, rb.Span.End)
	return pl, nil
}
