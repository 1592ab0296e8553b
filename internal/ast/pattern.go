package ast

// Pattern is the body of a message, term, attribute or variant.
type Pattern struct {
	Base
	Elements []PatternElement
}

// PatternElement: *TextElement или *Placeable.
type PatternElement interface {
	Node
	patternElement()
}

type TextElement struct {
	Base
	Value string
}

// Placeable is '{ expression }'. Nested placeables are inline expressions too.
type Placeable struct {
	Base
	Expression Expression
}

func (*TextElement) patternElement() {}
func (*Placeable) patternElement()   {}

// IsSimple reports whether the pattern is a single text element.
func (p *Pattern) IsSimple() bool {
	if len(p.Elements) != 1 {
		return false
	}
	_, ok := p.Elements[0].(*TextElement)
	return ok
}

// IsMultiline reports whether any text element spans more than one line.
func (p *Pattern) IsMultiline() bool {
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *TextElement:
			for i := 0; i < len(el.Value); i++ {
				if el.Value[i] == '\n' {
					return true
				}
			}
		case *Placeable:
			if _, ok := el.Expression.(*SelectExpression); ok {
				return true
			}
		}
	}
	return false
}
