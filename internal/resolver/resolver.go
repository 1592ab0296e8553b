package resolver

import (
	"fmt"
	"strings"

	"fluentkit/internal/ast"
	"fluentkit/internal/diag"
	"fluentkit/internal/intl"
	"fluentkit/internal/memo"
	"fluentkit/internal/value"
)

const (
	fsi = '\u2068'
	pdi = '\u2069'

	unresolved = "???"
)

type writer interface {
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
}

// Resolve renders pattern with args and returns the collected errors.
func Resolve(env Env, pattern *ast.Pattern, args value.Args) (string, []error) {
	var errs []error
	out := ResolvePattern(env, pattern, args, &errs)
	return out, errs
}

// ResolvePattern renders pattern, appending recoverable errors to errs.
// It always produces a string.
func ResolvePattern(env Env, pattern *ast.Pattern, args value.Args, errs *[]error) string {
	if pattern == nil {
		return ""
	}
	return NewScope(env, args, errs).Pattern(pattern)
}

// Pattern renders a top-level pattern within the scope.
func (s *Scope) Pattern(p *ast.Pattern) string {
	// одиночный текст без лишних аллокаций
	if len(p.Elements) == 1 {
		if te, ok := p.Elements[0].(*ast.TextElement); ok {
			return s.text(te.Value)
		}
	}
	var sb strings.Builder
	if len(s.traveled) == 0 {
		s.traveled = append(s.traveled, p)
		s.writePattern(&sb, p)
		s.traveled = s.traveled[:0]
	} else {
		s.writePattern(&sb, p)
	}
	return sb.String()
}

func (s *Scope) text(t string) string {
	if tr := s.env.Transform(); tr != nil {
		return tr(t)
	}
	return t
}

func (s *Scope) writePattern(w writer, p *ast.Pattern) {
	if s.dirty {
		return
	}
	for _, el := range p.Elements {
		if s.dirty {
			return
		}
		switch el := el.(type) {
		case *ast.TextElement:
			w.WriteString(s.text(el.Value))
		case *ast.Placeable:
			s.placeables++
			if s.placeables > MaxPlaceables {
				s.dirty = true
				s.addError(&Error{Kind: TooManyPlaceables})
				w.WriteString(unresolved)
				return
			}
			iso := s.env.UseIsolating() && len(p.Elements) > 1 && needsIsolation(el.Expression)
			if iso {
				w.WriteRune(fsi)
			}
			s.writeExpression(w, el.Expression)
			if iso {
				w.WriteRune(pdi)
			}
		}
	}
}

func needsIsolation(e ast.Expression) bool {
	switch e.(type) {
	case *ast.MessageReference, *ast.TermReference, *ast.StringLiteral:
		return false
	}
	return true
}

func (s *Scope) writeExpression(w writer, e ast.Expression) {
	switch e := e.(type) {
	case *ast.SelectExpression:
		s.writeSelect(w, e)
	case *ast.MessageReference:
		s.writeMessageReference(w, e)
	case *ast.TermReference:
		s.writeTermReference(w, e)
	case ast.InlineExpression:
		w.WriteString(s.format(s.resolveInline(e)))
	default:
		w.WriteString(unresolved)
	}
}

func (s *Scope) writeMessageReference(w writer, ref *ast.MessageReference) {
	id := ref.ID.Name
	node := displayNode(ref)
	msg, ok := s.env.Message(id)
	if !ok {
		s.addError(refError(diag.ResUnknownMessage, "Unknown message: "+id))
		w.WriteString(value.Error{Node: node}.String())
		return
	}
	if ref.Attribute != nil {
		attr := msg.Attribute(ref.Attribute.Name)
		if attr == nil || attr.Value == nil {
			s.addError(refError(diag.ResUnknownAttribute, "Unknown attribute: "+node))
			w.WriteString(value.Error{Node: node}.String())
			return
		}
		s.track(w, attr.Value, node)
		return
	}
	if msg.Value == nil {
		s.addError(refError(diag.ResNoValue, "No value: "+id))
		w.WriteString(value.Error{Node: node}.String())
		return
	}
	s.track(w, msg.Value, node)
}

func (s *Scope) writeTermReference(w writer, ref *ast.TermReference) {
	node := displayNode(ref)
	term, ok := s.env.Term(ref.ID.Name)
	if !ok {
		s.addError(refError(diag.ResUnknownTerm, "Unknown term: "+node))
		w.WriteString(value.Error{Node: node}.String())
		return
	}
	pattern := term.Value
	if ref.Attribute != nil {
		attr := term.Attribute(ref.Attribute.Name)
		if attr == nil || attr.Value == nil {
			s.addError(refError(diag.ResUnknownAttribute, "Unknown attribute: "+node))
			w.WriteString(value.Error{Node: node}.String())
			return
		}
		pattern = attr.Value
	}

	var local value.Args
	if ref.Arguments != nil {
		_, local = s.callArguments(ref.Arguments)
	}
	prev := s.local
	s.local = &local
	s.track(w, pattern, node)
	s.local = prev
}

func (s *Scope) writeSelect(w writer, se *ast.SelectExpression) {
	v := s.pickVariant(se)
	if v == nil {
		s.addError(&Error{Kind: MissingDefault})
		w.WriteString(unresolved)
		return
	}
	s.writePattern(w, v.Value)
}

func (s *Scope) pickVariant(se *ast.SelectExpression) *ast.Variant {
	sel := s.resolveInline(se.Selector)
	switch sel.(type) {
	case value.String, value.Number:
		for _, v := range se.Variants {
			if s.matches(sel, v.Key) {
				return v
			}
		}
	}
	return se.DefaultVariant()
}

func (s *Scope) matches(sel value.Value, key ast.VariantKey) bool {
	switch key := key.(type) {
	case *ast.Identifier:
		switch sel := sel.(type) {
		case value.String:
			return string(sel) == key.Name
		case value.Number:
			cat, ok := intl.ParseCategory(key.Name)
			if !ok {
				return false
			}
			rules, err := s.pluralRules()
			if err != nil {
				s.addError(&Error{Kind: Value, Detail: err.Error()})
				return false
			}
			return rules.Select(sel) == cat
		}
	case *ast.NumberLiteral:
		n, ok := sel.(value.Number)
		if !ok {
			return false
		}
		k, err := value.ParseNumber(key.Value)
		return err == nil && k.Value == n.Value
	}
	return false
}

func (s *Scope) pluralRules() (*intl.PluralRules, error) {
	if s.lm == nil {
		return nil, fmt.Errorf("no memoizer for %s", s.env.Locale())
	}
	return memo.GetLang[*intl.PluralRules](s.lm, intl.Cardinal)
}

// resolveInline evaluates an inline expression to a value.
func (s *Scope) resolveInline(e ast.InlineExpression) value.Value {
	switch e := e.(type) {
	case *ast.StringLiteral:
		return value.String(unescape(e.Value))
	case *ast.NumberLiteral:
		n, err := value.ParseNumber(e.Value)
		if err != nil {
			s.addError(&Error{Kind: Value, Detail: err.Error()})
			return value.Error{Node: unresolved}
		}
		return n
	case *ast.VariableReference:
		name := e.ID.Name
		if v, ok := s.lookupVariable(name); ok {
			return v
		}
		if s.local == nil {
			s.addError(refError(diag.ResUnknownVariable, "Unknown variable: $"+name))
		}
		return value.Error{Node: "$" + name}
	case *ast.FunctionReference:
		name := e.ID.Name
		fn, ok := s.env.Function(name)
		if !ok {
			s.addError(refError(diag.ResUnknownFunction, "Unknown function: "+name+"()"))
			return value.Error{Node: name + "()"}
		}
		pos, named := s.callArguments(e.Arguments)
		return fn(pos, named)
	case *ast.MessageReference, *ast.TermReference:
		var sb strings.Builder
		if m, ok := e.(*ast.MessageReference); ok {
			s.writeMessageReference(&sb, m)
		} else {
			s.writeTermReference(&sb, e.(*ast.TermReference))
		}
		return value.String(sb.String())
	case *ast.Placeable:
		if inner, ok := e.Expression.(ast.InlineExpression); ok {
			return s.resolveInline(inner)
		}
		var sb strings.Builder
		s.writeExpression(&sb, e.Expression)
		return value.String(sb.String())
	}
	return value.Error{Node: unresolved}
}

func (s *Scope) callArguments(args *ast.CallArguments) ([]value.Value, value.Args) {
	var named value.Args
	if args == nil {
		return nil, named
	}
	pos := make([]value.Value, 0, len(args.Positional))
	for _, a := range args.Positional {
		pos = append(pos, s.resolveInline(a))
	}
	for _, na := range args.Named {
		named.Set(na.Name.Name, s.resolveInline(na.Value))
	}
	return pos, named
}

// format turns a value into display text.
func (s *Scope) format(v value.Value) string {
	if f := s.env.Formatter(); f != nil && s.lm != nil {
		if out, ok := f(v, s.lm); ok {
			return out
		}
	}
	if c, ok := v.(value.Custom); ok && c.Value != nil {
		return c.Value.Format(s.env.Locale())
	}
	return v.String()
}

// displayNode is the placeholder text of a reference.
func displayNode(e ast.InlineExpression) string {
	switch e := e.(type) {
	case *ast.MessageReference:
		if e.Attribute != nil {
			return e.ID.Name + "." + e.Attribute.Name
		}
		return e.ID.Name
	case *ast.TermReference:
		if e.Attribute != nil {
			return "-" + e.ID.Name + "." + e.Attribute.Name
		}
		return "-" + e.ID.Name
	case *ast.VariableReference:
		return "$" + e.ID.Name
	case *ast.FunctionReference:
		return e.ID.Name + "()"
	}
	return unresolved
}
