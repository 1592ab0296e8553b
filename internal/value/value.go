// Package value holds runtime values produced and consumed during message
// resolution: strings, numbers, caller-defined values, errors and "no value".
package value

import (
	"golang.org/x/text/language"
)

// Value: закрытый набор: String, Number, Custom, Error, None.
type Value interface {
	// String is the plain rendering, used when no formatter claims the value.
	String() string
	isValue()
}

// String: строковое значение.
type String string

func (s String) String() string { return string(s) }

// Type is implemented by caller-defined values passed through Custom.
type Type interface {
	Format(locale language.Tag) string
	Equal(other Type) bool
}

// Custom wraps a caller-defined value.
type Custom struct {
	Value Type
}

func (c Custom) String() string {
	if c.Value == nil {
		return ""
	}
	return c.Value.Format(language.Und)
}

// Error marks a failed expression. Node is the displayable form of the
// expression: "$var", "msg.attr", "-term", "FUNC()".
type Error struct {
	Node string
}

func (e Error) String() string { return "{" + e.Node + "}" }

// None: значение отсутствует.
type None struct{}

func (None) String() string { return "" }

func (String) isValue() {}
func (Number) isValue() {}
func (Custom) isValue() {}
func (Error) isValue()  {}
func (None) isValue()   {}

// Equal compares two values the way selectors and tests expect: strings by
// content, numbers by value and options, custom values via Type.Equal.
// Error and None never compare equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Number:
		b, ok := b.(Number)
		return ok && a.Value == b.Value && a.Options == b.Options
	case Custom:
		b, ok := b.(Custom)
		return ok && a.Value != nil && b.Value != nil && a.Value.Equal(b.Value)
	}
	return false
}
