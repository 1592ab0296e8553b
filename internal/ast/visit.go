package ast

// Visitor gets one call per node kind. Methods that return bool control descent:
// true lets Walk continue into the children, false means the visitor handled them.
type Visitor interface {
	VisitResource(*Resource) bool
	VisitMessage(*Message) bool
	VisitTerm(*Term) bool
	VisitComment(*Comment)
	VisitJunk(*Junk)
	VisitAttribute(*Attribute) bool
	VisitPattern(*Pattern) bool
	VisitText(*TextElement)
	VisitPlaceable(*Placeable) bool
	VisitExpression(Expression) bool
	VisitVariant(*Variant) bool
	VisitCallArguments(*CallArguments) bool
	VisitIdentifier(*Identifier)
}

// BaseVisitor descends everywhere and does nothing else. Embed it and override
// only the methods you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitResource(*Resource) bool           { return true }
func (BaseVisitor) VisitMessage(*Message) bool             { return true }
func (BaseVisitor) VisitTerm(*Term) bool                   { return true }
func (BaseVisitor) VisitComment(*Comment)                  {}
func (BaseVisitor) VisitJunk(*Junk)                        {}
func (BaseVisitor) VisitAttribute(*Attribute) bool         { return true }
func (BaseVisitor) VisitPattern(*Pattern) bool             { return true }
func (BaseVisitor) VisitText(*TextElement)                 {}
func (BaseVisitor) VisitPlaceable(*Placeable) bool         { return true }
func (BaseVisitor) VisitExpression(Expression) bool        { return true }
func (BaseVisitor) VisitVariant(*Variant) bool             { return true }
func (BaseVisitor) VisitCallArguments(*CallArguments) bool { return true }
func (BaseVisitor) VisitIdentifier(*Identifier)            {}

// Walk обходит дерево в порядке исходного текста. nil-узлы пропускаются.
func Walk(v Visitor, n Node) {
	switch n := n.(type) {
	case nil:
		return
	case *Resource:
		if n == nil || !v.VisitResource(n) {
			return
		}
		for _, e := range n.Body {
			Walk(v, e)
		}
	case *Message:
		if n == nil || !v.VisitMessage(n) {
			return
		}
		walkComment(v, n.Comment)
		Walk(v, n.ID)
		walkPattern(v, n.Value)
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *Term:
		if n == nil || !v.VisitTerm(n) {
			return
		}
		walkComment(v, n.Comment)
		Walk(v, n.ID)
		walkPattern(v, n.Value)
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *Comment:
		if n != nil {
			v.VisitComment(n)
		}
	case *Junk:
		if n != nil {
			v.VisitJunk(n)
		}
	case *Attribute:
		if n == nil || !v.VisitAttribute(n) {
			return
		}
		Walk(v, n.ID)
		walkPattern(v, n.Value)
	case *Pattern:
		if n == nil || !v.VisitPattern(n) {
			return
		}
		for _, el := range n.Elements {
			Walk(v, el)
		}
	case *TextElement:
		if n != nil {
			v.VisitText(n)
		}
	case *Placeable:
		if n == nil || !v.VisitPlaceable(n) {
			return
		}
		Walk(v, n.Expression)
	case *Variant:
		if n == nil || !v.VisitVariant(n) {
			return
		}
		Walk(v, n.Key)
		walkPattern(v, n.Value)
	case *CallArguments:
		if n == nil || !v.VisitCallArguments(n) {
			return
		}
		for _, p := range n.Positional {
			Walk(v, p)
		}
		for _, na := range n.Named {
			Walk(v, na.Name)
			Walk(v, na.Value)
		}
	case *Identifier:
		if n != nil {
			v.VisitIdentifier(n)
		}
	case Expression:
		walkExpression(v, n)
	}
}

// *Placeable тоже Expression, но обрабатывается выше отдельной веткой.
func walkExpression(v Visitor, e Expression) {
	if !v.VisitExpression(e) {
		return
	}
	switch e := e.(type) {
	case *StringLiteral, *NumberLiteral:
	case *VariableReference:
		Walk(v, e.ID)
	case *MessageReference:
		Walk(v, e.ID)
		walkIdent(v, e.Attribute)
	case *TermReference:
		Walk(v, e.ID)
		walkIdent(v, e.Attribute)
		if e.Arguments != nil {
			Walk(v, e.Arguments)
		}
	case *FunctionReference:
		Walk(v, e.ID)
		if e.Arguments != nil {
			Walk(v, e.Arguments)
		}
	case *SelectExpression:
		Walk(v, e.Selector)
		for _, variant := range e.Variants {
			Walk(v, variant)
		}
	}
}

// typed-nil guards: interface holding (*T)(nil) is not nil
func walkPattern(v Visitor, p *Pattern) {
	if p != nil {
		Walk(v, p)
	}
}

func walkComment(v Visitor, c *Comment) {
	if c != nil {
		Walk(v, c)
	}
}

func walkIdent(v Visitor, id *Identifier) {
	if id != nil {
		Walk(v, id)
	}
}
