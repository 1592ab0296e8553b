package ast

import (
	"fluentkit/internal/source"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() source.Span
}

// Base хранит общий для всех узлов span.
type Base struct {
	Span source.Span
}

func (b *Base) Pos() source.Span { return b.Span }

// Identifier: имя сообщения, термина, атрибута, переменной или функции.
type Identifier struct {
	Base
	Name string
}

func (*Identifier) variantKey() {}

// NewIdentifier is a convenience for building trees by hand (tests, codecs).
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}
