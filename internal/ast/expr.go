package ast

// Expression is the content of a placeable: an inline expression or a select.
type Expression interface {
	Node
	expressionNode()
}

// InlineExpression может стоять где угодно, включая селектор и аргументы вызова.
type InlineExpression interface {
	Expression
	inlineExpression()
}

// Literal is a named argument value.
type Literal interface {
	InlineExpression
	literalNode()
}

// VariantKey: *Identifier или *NumberLiteral.
type VariantKey interface {
	Node
	variantKey()
}

// StringLiteral keeps the raw text between the quotes; escapes are not expanded.
type StringLiteral struct {
	Base
	Value string
}

// NumberLiteral keeps the source text, e.g. "-1.50".
type NumberLiteral struct {
	Base
	Value string
}

type VariableReference struct {
	Base
	ID *Identifier
}

type MessageReference struct {
	Base
	ID        *Identifier
	Attribute *Identifier
}

type TermReference struct {
	Base
	ID        *Identifier
	Attribute *Identifier
	Arguments *CallArguments // nil без скобок
}

type FunctionReference struct {
	Base
	ID        *Identifier
	Arguments *CallArguments
}

type SelectExpression struct {
	Base
	Selector InlineExpression
	Variants []*Variant
}

type CallArguments struct {
	Base
	Positional []InlineExpression
	Named      []*NamedArgument
}

type NamedArgument struct {
	Base
	Name  *Identifier
	Value Literal
}

type Variant struct {
	Base
	Key     VariantKey
	Value   *Pattern
	Default bool
}

func (*StringLiteral) expressionNode()     {}
func (*NumberLiteral) expressionNode()     {}
func (*VariableReference) expressionNode() {}
func (*MessageReference) expressionNode()  {}
func (*TermReference) expressionNode()     {}
func (*FunctionReference) expressionNode() {}
func (*SelectExpression) expressionNode()  {}
func (*Placeable) expressionNode()         {}

func (*StringLiteral) inlineExpression()     {}
func (*NumberLiteral) inlineExpression()     {}
func (*VariableReference) inlineExpression() {}
func (*MessageReference) inlineExpression()  {}
func (*TermReference) inlineExpression()     {}
func (*FunctionReference) inlineExpression() {}
func (*Placeable) inlineExpression()         {}

func (*StringLiteral) literalNode() {}
func (*NumberLiteral) literalNode() {}

func (*NumberLiteral) variantKey() {}

// DefaultVariant returns the variant marked with '*', or nil.
func (s *SelectExpression) DefaultVariant() *Variant {
	for _, v := range s.Variants {
		if v.Default {
			return v
		}
	}
	return nil
}

// KeyName returns the key text: the identifier name or the number source.
func (v *Variant) KeyName() string {
	switch k := v.Key.(type) {
	case *Identifier:
		return k.Name
	case *NumberLiteral:
		return k.Value
	}
	return ""
}
