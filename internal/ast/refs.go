package ast

import (
	"fluentkit/internal/source"
)

// RefKind: вид ссылки внутри плейсхолдера.
type RefKind uint8

const (
	RefMessage RefKind = iota
	RefTerm
	RefVariable
	RefFunction
)

func (k RefKind) String() string {
	switch k {
	case RefMessage:
		return "message"
	case RefTerm:
		return "term"
	case RefVariable:
		return "variable"
	case RefFunction:
		return "function"
	}
	return "reference"
}

// Reference is one use of a message, term, variable or function.
type Reference struct {
	Kind      RefKind
	ID        string
	Attribute string
	Span      source.Span
	// From: id записи, в которой найдена ссылка ("-" для терминов).
	From string
}

// Key returns "id" or "id.attr" with a leading '-' for terms.
func (r Reference) Key() string {
	key := r.ID
	if r.Kind == RefTerm {
		key = "-" + key
	}
	if r.Attribute != "" {
		key += "." + r.Attribute
	}
	return key
}

type refCollector struct {
	BaseVisitor
	from string
	refs []Reference
}

func (c *refCollector) VisitMessage(m *Message) bool {
	c.from = m.ID.Name
	return true
}

func (c *refCollector) VisitTerm(t *Term) bool {
	c.from = "-" + t.ID.Name
	return true
}

func (c *refCollector) VisitExpression(e Expression) bool {
	switch e := e.(type) {
	case *MessageReference:
		c.add(RefMessage, e.ID, e.Attribute, e.Span)
	case *TermReference:
		c.add(RefTerm, e.ID, e.Attribute, e.Span)
	case *VariableReference:
		c.add(RefVariable, e.ID, nil, e.Span)
	case *FunctionReference:
		c.add(RefFunction, e.ID, nil, e.Span)
	}
	return true
}

func (c *refCollector) add(kind RefKind, id, attr *Identifier, sp source.Span) {
	ref := Reference{Kind: kind, ID: id.Name, Span: sp, From: c.from}
	if attr != nil {
		ref.Attribute = attr.Name
	}
	c.refs = append(c.refs, ref)
}

// CollectReferences lists every reference under n in source order.
func CollectReferences(n Node) []Reference {
	c := &refCollector{}
	Walk(c, n)
	return c.refs
}

// Unresolved returns message and term references that no entry of the given
// resources defines. Attribute references also require the attribute.
func Unresolved(resources ...*Resource) []Reference {
	messages := make(map[string]*Message)
	terms := make(map[string]*Term)
	for _, res := range resources {
		for _, e := range res.Body {
			switch e := e.(type) {
			case *Message:
				messages[e.ID.Name] = e
			case *Term:
				terms[e.ID.Name] = e
			}
		}
	}

	var out []Reference
	for _, res := range resources {
		for _, ref := range CollectReferences(res) {
			switch ref.Kind {
			case RefMessage:
				m, ok := messages[ref.ID]
				if !ok || (ref.Attribute != "" && m.Attribute(ref.Attribute) == nil) {
					out = append(out, ref)
				}
			case RefTerm:
				t, ok := terms[ref.ID]
				if !ok || (ref.Attribute != "" && t.Attribute(ref.Attribute) == nil) {
					out = append(out, ref)
				}
			}
		}
	}
	return out
}
