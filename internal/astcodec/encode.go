package astcodec

import (
	"strings"

	"fluentkit/internal/ast"
)

// Encode converts a resource into records. Spans are not part of the
// record form.
func Encode(res *ast.Resource) *Node {
	body := make([]*Node, 0, len(res.Body))
	for _, e := range res.Body {
		body = append(body, encodeEntry(e))
	}
	return newNode("Resource", Field{"body", body})
}

func encodeEntry(e ast.Entry) *Node {
	switch e := e.(type) {
	case *ast.Message:
		return newNode("Message",
			Field{"id", encodeIdent(e.ID)},
			Field{"value", encodePattern(e.Value)},
			Field{"attributes", encodeAttributes(e.Attributes)},
			Field{"comment", encodeComment(e.Comment)},
		)
	case *ast.Term:
		return newNode("Term",
			Field{"id", encodeIdent(e.ID)},
			Field{"value", encodePattern(e.Value)},
			Field{"attributes", encodeAttributes(e.Attributes)},
			Field{"comment", encodeComment(e.Comment)},
		)
	case *ast.Comment:
		return encodeComment(e)
	case *ast.Junk:
		anns := make([]*Node, 0, len(e.Annotations))
		for _, a := range e.Annotations {
			anns = append(anns, newNode("Annotation",
				Field{"code", a.Code},
				Field{"arguments", append([]string{}, a.Arguments...)},
				Field{"message", a.Message},
			))
		}
		return newNode("Junk",
			Field{"annotations", anns},
			Field{"content", e.Content},
		)
	}
	return nil
}

func encodeIdent(id *ast.Identifier) *Node {
	if id == nil {
		return nil
	}
	return newNode("Identifier", Field{"name", id.Name})
}

func encodeComment(c *ast.Comment) *Node {
	if c == nil {
		return nil
	}
	return newNode(c.Kind.String(), Field{"content", strings.Join(c.Content, "\n")})
}

func encodeAttributes(attrs []*ast.Attribute) []*Node {
	out := make([]*Node, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, newNode("Attribute",
			Field{"id", encodeIdent(a.ID)},
			Field{"value", encodePattern(a.Value)},
		))
	}
	return out
}

func encodePattern(p *ast.Pattern) *Node {
	if p == nil {
		return nil
	}
	elems := make([]*Node, 0, len(p.Elements))
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *ast.TextElement:
			elems = append(elems, newNode("TextElement", Field{"value", el.Value}))
		case *ast.Placeable:
			elems = append(elems, encodeExpression(el))
		}
	}
	return newNode("Pattern", Field{"elements", elems})
}

func encodeExpression(e ast.Expression) *Node {
	switch e := e.(type) {
	case *ast.StringLiteral:
		return newNode("StringLiteral", Field{"value", e.Value})
	case *ast.NumberLiteral:
		return newNode("NumberLiteral", Field{"value", e.Value})
	case *ast.VariableReference:
		return newNode("VariableReference", Field{"id", encodeIdent(e.ID)})
	case *ast.MessageReference:
		return newNode("MessageReference",
			Field{"id", encodeIdent(e.ID)},
			Field{"attribute", encodeIdent(e.Attribute)},
		)
	case *ast.TermReference:
		return newNode("TermReference",
			Field{"id", encodeIdent(e.ID)},
			Field{"attribute", encodeIdent(e.Attribute)},
			Field{"arguments", encodeCallArguments(e.Arguments)},
		)
	case *ast.FunctionReference:
		return newNode("FunctionReference",
			Field{"id", encodeIdent(e.ID)},
			Field{"arguments", encodeCallArguments(e.Arguments)},
		)
	case *ast.SelectExpression:
		variants := make([]*Node, 0, len(e.Variants))
		for _, v := range e.Variants {
			variants = append(variants, newNode("Variant",
				Field{"key", encodeVariantKey(v.Key)},
				Field{"value", encodePattern(v.Value)},
				Field{"default", v.Default},
			))
		}
		return newNode("SelectExpression",
			Field{"selector", encodeExpression(e.Selector)},
			Field{"variants", variants},
		)
	case *ast.Placeable:
		return newNode("Placeable", Field{"expression", encodeExpression(e.Expression)})
	}
	return nil
}

func encodeVariantKey(k ast.VariantKey) *Node {
	switch k := k.(type) {
	case *ast.Identifier:
		return encodeIdent(k)
	case *ast.NumberLiteral:
		return newNode("NumberLiteral", Field{"value", k.Value})
	}
	return nil
}

func encodeCallArguments(args *ast.CallArguments) *Node {
	if args == nil {
		return nil
	}
	pos := make([]*Node, 0, len(args.Positional))
	for _, p := range args.Positional {
		pos = append(pos, encodeExpression(p))
	}
	named := make([]*Node, 0, len(args.Named))
	for _, na := range args.Named {
		named = append(named, newNode("NamedArgument",
			Field{"name", encodeIdent(na.Name)},
			Field{"value", encodeExpression(na.Value)},
		))
	}
	return newNode("CallArguments",
		Field{"positional", pos},
		Field{"named", named},
	)
}
