// Package bundle stores the messages and terms of one locale and formats them.
package bundle

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"

	"fluentkit/internal/ast"
	"fluentkit/internal/memo"
	"fluentkit/internal/resolver"
	"fluentkit/internal/value"
)

type (
	Function  = resolver.Function
	Formatter = resolver.Formatter
)

// Bundle is a per-locale message store. It is not safe for concurrent use;
// build one per goroutine or guard it externally.
type Bundle struct {
	locales   []language.Tag
	resources []*ast.Resource // в порядке добавления
	messages  map[string]*ast.Message
	terms     map[string]*ast.Term
	functions map[string]Function

	memo      *memo.Memoizer
	isolating bool
	transform func(string) string
	formatter Formatter
}

// New creates an empty bundle. The first locale is the primary one; an empty
// list means language.Und.
func New(locales []language.Tag, opts ...Option) *Bundle {
	if len(locales) == 0 {
		locales = []language.Tag{language.Und}
	}
	b := &Bundle{
		locales:   append([]language.Tag(nil), locales...),
		messages:  make(map[string]*ast.Message),
		terms:     make(map[string]*ast.Term),
		functions: make(map[string]Function),
		memo:      memo.New(),
		isolating: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Locales returns the fallback locales of the bundle, primary first.
func (b *Bundle) Locales() []language.Tag {
	return append([]language.Tag(nil), b.locales...)
}

// AddResource merges the resource entries. A later entry with the same id
// replaces the earlier one; messages and terms do not collide.
func (b *Bundle) AddResource(res *ast.Resource) {
	b.resources = append(b.resources, res)
	for _, e := range res.Body {
		switch e := e.(type) {
		case *ast.Message:
			b.messages[e.ID.Name] = e
		case *ast.Term:
			b.terms[e.ID.Name] = e
		}
	}
}

// AddResourceStrict is AddResource that keeps the earlier entry on a
// collision and reports an *OverrideError for it.
func (b *Bundle) AddResourceStrict(res *ast.Resource) []error {
	b.resources = append(b.resources, res)
	var errs []error
	for _, e := range res.Body {
		switch e := e.(type) {
		case *ast.Message:
			if _, ok := b.messages[e.ID.Name]; ok {
				errs = append(errs, &OverrideError{Kind: KindMessage, ID: e.ID.Name})
				continue
			}
			b.messages[e.ID.Name] = e
		case *ast.Term:
			if _, ok := b.terms[e.ID.Name]; ok {
				errs = append(errs, &OverrideError{Kind: KindTerm, ID: e.ID.Name})
				continue
			}
			b.terms[e.ID.Name] = e
		}
	}
	return errs
}

// Resources returns the added resources in insertion order.
func (b *Bundle) Resources() []*ast.Resource {
	return slices.Clone(b.resources)
}

// AddFunction registers fn under name. Names are unique.
func (b *Bundle) AddFunction(name string, fn Function) error {
	if _, ok := b.functions[name]; ok {
		return fmt.Errorf("%w: %s", ErrFunctionExists, name)
	}
	b.functions[name] = fn
	return nil
}

func (b *Bundle) HasMessage(id string) bool {
	_, ok := b.messages[id]
	return ok
}

// MessageIDs returns the ids of all messages, sorted.
func (b *Bundle) MessageIDs() []string {
	return slices.Sorted(maps.Keys(b.messages))
}

func (b *Bundle) Message(id string) (*ast.Message, bool) {
	m, ok := b.messages[id]
	return m, ok
}

func (b *Bundle) Term(id string) (*ast.Term, bool) {
	t, ok := b.terms[id]
	return t, ok
}

func (b *Bundle) Function(name string) (Function, bool) {
	fn, ok := b.functions[name]
	return fn, ok
}

func (b *Bundle) Memo() *memo.Memoizer { return b.memo }
func (b *Bundle) Locale() language.Tag { return b.locales[0] }
func (b *Bundle) UseIsolating() bool { return b.isolating }
func (b *Bundle) Transform() func(string) string { return b.transform }
func (b *Bundle) Formatter() Formatter { return b.formatter }

// Format resolves the value of message id. Resolution problems come back in
// the error slice and never prevent output; the last result is set only when
// the message is missing or has no value.
func (b *Bundle) Format(id string, args value.Args) (string, []error, error) {
	msg, ok := b.messages[id]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	if msg.Value == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrNoValue, id)
	}
	out, errs := resolver.Resolve(b, msg.Value, args)
	return out, errs, nil
}

// FormatPattern resolves any pattern against this bundle.
func (b *Bundle) FormatPattern(p *ast.Pattern, args value.Args) (string, []error) {
	return resolver.Resolve(b, p, args)
}

// FormattedAttribute: атрибут с вычисленным значением.
type FormattedAttribute struct {
	Name  string
	Value string
}

// FormattedMessage is a message value together with its attributes.
type FormattedMessage struct {
	Value      string
	HasValue   bool
	Attributes []FormattedAttribute
}

// Attribute returns the formatted attribute by name.
func (fm *FormattedMessage) Attribute(name string) (string, bool) {
	for _, a := range fm.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// FormatMessage resolves the value, when present, and every attribute.
func (b *Bundle) FormatMessage(id string, args value.Args) (*FormattedMessage, []error, error) {
	msg, ok := b.messages[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	var errs []error
	fm := &FormattedMessage{Attributes: make([]FormattedAttribute, 0, len(msg.Attributes))}
	if msg.Value != nil {
		fm.Value = resolver.ResolvePattern(b, msg.Value, args, &errs)
		fm.HasValue = true
	}
	for _, attr := range msg.Attributes {
		fm.Attributes = append(fm.Attributes, FormattedAttribute{
			Name:  attr.ID.Name,
			Value: resolver.ResolvePattern(b, attr.Value, args, &errs),
		})
	}
	return fm, errs, nil
}
