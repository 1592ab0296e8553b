package ast

import (
	"fluentkit/internal/source"
)

// Resource is a parsed FTL file: entries in source order.
type Resource struct {
	Base
	Body []Entry
}

// Entry: закрытый набор: *Message, *Term, *Comment, *Junk.
type Entry interface {
	Node
	entryNode()
}

// Message is a public translation unit. A message has a value, attributes, or both.
type Message struct {
	Base
	ID         *Identifier
	Value      *Pattern // nil, если у сообщения только атрибуты
	Attributes []*Attribute
	Comment    *Comment
}

// Term is a private entry referenced as -id. Its value is mandatory.
type Term struct {
	Base
	ID         *Identifier
	Value      *Pattern
	Attributes []*Attribute
	Comment    *Comment
}

type Attribute struct {
	Base
	ID    *Identifier
	Value *Pattern
}

// CommentKind различает '#', '##' и '###'.
type CommentKind uint8

const (
	CommentRegular CommentKind = iota + 1
	CommentGroup
	CommentResource
)

func (k CommentKind) String() string {
	switch k {
	case CommentRegular:
		return "Comment"
	case CommentGroup:
		return "GroupComment"
	case CommentResource:
		return "ResourceComment"
	}
	return "Comment(?)"
}

// Sigil returns the comment marker: "#", "##" or "###".
func (k CommentKind) Sigil() string {
	switch k {
	case CommentGroup:
		return "##"
	case CommentResource:
		return "###"
	}
	return "#"
}

// Comment holds consecutive comment lines of the same kind.
type Comment struct {
	Base
	Kind    CommentKind
	Content []string
}

// Annotation describes a syntax error that turned source text into Junk.
type Annotation struct {
	Code      string
	Arguments []string
	Message   string
	Span      source.Span
}

// Junk: текст, который не удалось разобрать. Никогда не резолвится.
type Junk struct {
	Base
	Content     string
	Annotations []Annotation
}

func (*Message) entryNode() {}
func (*Term) entryNode()    {}
func (*Comment) entryNode() {}
func (*Junk) entryNode()    {}

// Attribute returns the attribute with the given name, or nil.
func (m *Message) Attribute(name string) *Attribute {
	return findAttribute(m.Attributes, name)
}

// Attribute returns the attribute with the given name, or nil.
func (t *Term) Attribute(name string) *Attribute {
	return findAttribute(t.Attributes, name)
}

func findAttribute(attrs []*Attribute, name string) *Attribute {
	for _, a := range attrs {
		if a.ID.Name == name {
			return a
		}
	}
	return nil
}

// Messages returns the messages of the resource in order.
func (r *Resource) Messages() []*Message {
	out := make([]*Message, 0, len(r.Body))
	for _, e := range r.Body {
		if m, ok := e.(*Message); ok {
			out = append(out, m)
		}
	}
	return out
}

// Terms returns the terms of the resource in order.
func (r *Resource) Terms() []*Term {
	out := make([]*Term, 0)
	for _, e := range r.Body {
		if t, ok := e.(*Term); ok {
			out = append(out, t)
		}
	}
	return out
}

// Junk returns the unparsed fragments of the resource.
func (r *Resource) Junk() []*Junk {
	var out []*Junk
	for _, e := range r.Body {
		if j, ok := e.(*Junk); ok {
			out = append(out, j)
		}
	}
	return out
}
