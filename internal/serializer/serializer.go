// Package serializer prints an AST back as canonical FTL.
package serializer

import (
	"strings"

	"fluentkit/internal/ast"
)

// Options управляют выводом.
type Options struct {
	// WithJunk copies Junk entries verbatim instead of dropping them.
	WithJunk bool
}

// Serialize renders res. The output uses 4-space indentation and starts
// multiline and select patterns on their own line.
func Serialize(res *ast.Resource, opts Options) string {
	s := &serializer{w: newTextWriter(), opts: opts}
	ast.Walk(s, res)
	return s.w.String()
}

type serializer struct {
	ast.BaseVisitor
	w          *textWriter
	opts       Options
	hasEntries bool
}

func (s *serializer) VisitMessage(m *ast.Message) bool {
	if m.Comment != nil {
		s.comment(m.Comment)
	}
	s.w.write(m.ID.Name + " =")
	if m.Value != nil {
		s.pattern(m.Value)
	}
	s.attributes(m.Attributes)
	s.w.newline()
	s.hasEntries = true
	return false
}

func (s *serializer) VisitTerm(t *ast.Term) bool {
	if t.Comment != nil {
		s.comment(t.Comment)
	}
	s.w.write("-" + t.ID.Name + " =")
	s.pattern(t.Value)
	s.attributes(t.Attributes)
	s.w.newline()
	s.hasEntries = true
	return false
}

func (s *serializer) VisitComment(c *ast.Comment) {
	s.comment(c)
	s.w.newline()
	s.hasEntries = true
}

func (s *serializer) VisitJunk(j *ast.Junk) {
	if !s.opts.WithJunk {
		return
	}
	s.w.write(j.Content)
	s.hasEntries = true
}

func (s *serializer) comment(c *ast.Comment) {
	if s.hasEntries && !s.w.blankLine() {
		s.w.newline()
	}
	sigil := c.Kind.Sigil()
	for _, line := range c.Content {
		if strings.TrimSpace(line) == "" {
			s.w.write(sigil)
		} else {
			s.w.write(sigil + " " + line)
		}
		s.w.newline()
	}
}

func (s *serializer) attributes(attrs []*ast.Attribute) {
	if len(attrs) == 0 {
		return
	}
	s.w.indent()
	for _, a := range attrs {
		s.w.newline()
		s.w.write("." + a.ID.Name + " =")
		s.pattern(a.Value)
	}
	s.w.dedent()
}

func startsOnNewline(p *ast.Pattern) bool {
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *ast.TextElement:
			if strings.Contains(el.Value, "\n") {
				return true
			}
		case *ast.Placeable:
			if isSelect(el.Expression) {
				return true
			}
		}
	}
	return false
}

func isSelect(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.SelectExpression:
		return true
	case *ast.Placeable:
		return isSelect(e.Expression)
	}
	return false
}

func (s *serializer) pattern(p *ast.Pattern) {
	if p == nil {
		return
	}
	block := startsOnNewline(p)
	if block {
		s.w.newline()
		s.w.indent()
	} else {
		s.w.write(" ")
	}
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *ast.TextElement:
			s.text(el.Value)
		case *ast.Placeable:
			s.placeable(el)
		}
	}
	if block {
		s.w.dedent()
	}
}

// text escapes characters that would start a variant, attribute or default
// marker at the beginning of a continuation line.
func (s *serializer) text(t string) {
	for t != "" {
		if s.w.lineStart && strings.ContainsRune("[*.", rune(t[0])) {
			s.w.write(`{ "` + t[:1] + `" }`)
			t = t[1:]
			continue
		}
		line, rest, found := strings.Cut(t, "\n")
		s.w.write(line)
		if !found {
			return
		}
		s.w.newline()
		t = rest
	}
}

func (s *serializer) placeable(p *ast.Placeable) {
	if se, ok := p.Expression.(*ast.SelectExpression); ok {
		s.selectExpression(se)
		return
	}
	s.w.write("{ ")
	s.expression(p.Expression)
	s.w.write(" }")
}

func (s *serializer) selectExpression(se *ast.SelectExpression) {
	s.w.write("{ ")
	s.expression(se.Selector)
	s.w.write(" ->")
	s.w.indent()
	for _, v := range se.Variants {
		s.w.newline()
		if v.Default {
			s.w.writeOutdented("*", 1)
		}
		s.w.write("[" + v.KeyName() + "]")
		s.pattern(v.Value)
	}
	s.w.dedent()
	s.w.newline()
	s.w.write("}")
}

func (s *serializer) expression(e ast.Expression) {
	switch e := e.(type) {
	case *ast.StringLiteral:
		s.w.write(`"` + e.Value + `"`)
	case *ast.NumberLiteral:
		s.w.write(e.Value)
	case *ast.VariableReference:
		s.w.write("$" + e.ID.Name)
	case *ast.MessageReference:
		s.w.write(e.ID.Name)
		if e.Attribute != nil {
			s.w.write("." + e.Attribute.Name)
		}
	case *ast.TermReference:
		s.w.write("-" + e.ID.Name)
		if e.Attribute != nil {
			s.w.write("." + e.Attribute.Name)
		}
		if e.Arguments != nil {
			s.callArguments(e.Arguments)
		}
	case *ast.FunctionReference:
		s.w.write(e.ID.Name)
		s.callArguments(e.Arguments)
	case *ast.Placeable:
		s.placeable(e)
	case *ast.SelectExpression:
		s.selectExpression(e)
	}
}

func (s *serializer) callArguments(args *ast.CallArguments) {
	s.w.write("(")
	if args != nil {
		first := true
		sep := func() {
			if !first {
				s.w.write(", ")
			}
			first = false
		}
		for _, p := range args.Positional {
			sep()
			s.expression(p)
		}
		for _, na := range args.Named {
			sep()
			s.w.write(na.Name.Name + ": ")
			s.expression(na.Value)
		}
	}
	s.w.write(")")
}
