package astcodec

import (
	"fmt"
	"strings"

	"fluentkit/internal/ast"
)

// Decode rebuilds a resource from records produced by Encode.
func Decode(n *Node) (*ast.Resource, error) {
	if n == nil || n.Type != "Resource" {
		return nil, fmt.Errorf("astcodec: expected Resource record")
	}
	d := decoder{}
	res := &ast.Resource{}
	for _, c := range d.nodes(n, "body") {
		e := d.entry(c)
		if d.err != nil {
			return nil, d.err
		}
		res.Body = append(res.Body, e)
	}
	return res, d.err
}

// decoder запоминает первую ошибку, дальше работает вхолостую.
type decoder struct {
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("astcodec: "+format, args...)
	}
}

func (d *decoder) node(n *Node, name string) *Node {
	v, ok := n.Get(name)
	if !ok {
		d.fail("%s: missing field %q", n.Type, name)
		return nil
	}
	switch v := v.(type) {
	case nil:
		return nil
	case *Node:
		return v
	}
	d.fail("%s.%s: expected record, got %T", n.Type, name, v)
	return nil
}

func (d *decoder) nodes(n *Node, name string) []*Node {
	v, ok := n.Get(name)
	if !ok {
		d.fail("%s: missing field %q", n.Type, name)
		return nil
	}
	list, ok := v.([]*Node)
	if !ok {
		d.fail("%s.%s: expected list, got %T", n.Type, name, v)
	}
	return list
}

func (d *decoder) str(n *Node, name string) string {
	v, _ := n.Get(name)
	s, ok := v.(string)
	if !ok {
		d.fail("%s.%s: expected string, got %T", n.Type, name, v)
	}
	return s
}

func (d *decoder) entry(n *Node) ast.Entry {
	switch n.Type {
	case "Message":
		return &ast.Message{
			ID:         d.ident(d.node(n, "id")),
			Value:      d.pattern(d.node(n, "value")),
			Attributes: d.attributes(n),
			Comment:    d.comment(d.node(n, "comment")),
		}
	case "Term":
		return &ast.Term{
			ID:         d.ident(d.node(n, "id")),
			Value:      d.pattern(d.node(n, "value")),
			Attributes: d.attributes(n),
			Comment:    d.comment(d.node(n, "comment")),
		}
	case "Comment", "GroupComment", "ResourceComment":
		return d.comment(n)
	case "Junk":
		j := &ast.Junk{Content: d.str(n, "content")}
		for _, a := range d.nodes(n, "annotations") {
			args, _ := a.Get("arguments")
			list, _ := args.([]string)
			j.Annotations = append(j.Annotations, ast.Annotation{
				Code:      d.str(a, "code"),
				Arguments: list,
				Message:   d.str(a, "message"),
			})
		}
		return j
	}
	d.fail("unknown entry type %q", n.Type)
	return nil
}

func (d *decoder) ident(n *Node) *ast.Identifier {
	if n == nil {
		return nil
	}
	return &ast.Identifier{Name: d.str(n, "name")}
}

func (d *decoder) comment(n *Node) *ast.Comment {
	if n == nil {
		return nil
	}
	var kind ast.CommentKind
	switch n.Type {
	case "Comment":
		kind = ast.CommentRegular
	case "GroupComment":
		kind = ast.CommentGroup
	case "ResourceComment":
		kind = ast.CommentResource
	default:
		d.fail("unknown comment type %q", n.Type)
	}
	return &ast.Comment{Kind: kind, Content: strings.Split(d.str(n, "content"), "\n")}
}

func (d *decoder) attributes(n *Node) []*ast.Attribute {
	var out []*ast.Attribute
	for _, a := range d.nodes(n, "attributes") {
		out = append(out, &ast.Attribute{
			ID:    d.ident(d.node(a, "id")),
			Value: d.pattern(d.node(a, "value")),
		})
	}
	return out
}

func (d *decoder) pattern(n *Node) *ast.Pattern {
	if n == nil {
		return nil
	}
	p := &ast.Pattern{}
	for _, el := range d.nodes(n, "elements") {
		switch el.Type {
		case "TextElement":
			p.Elements = append(p.Elements, &ast.TextElement{Value: d.str(el, "value")})
		case "Placeable":
			p.Elements = append(p.Elements, d.placeable(el))
		default:
			d.fail("unknown pattern element %q", el.Type)
		}
	}
	return p
}

func (d *decoder) placeable(n *Node) *ast.Placeable {
	return &ast.Placeable{Expression: d.expression(d.node(n, "expression"))}
}

func (d *decoder) expression(n *Node) ast.Expression {
	if n == nil {
		d.fail("missing expression")
		return nil
	}
	if n.Type == "SelectExpression" {
		se := &ast.SelectExpression{Selector: d.inline(d.node(n, "selector"))}
		for _, v := range d.nodes(n, "variants") {
			def, _ := v.Get("default")
			isDefault, _ := def.(bool)
			se.Variants = append(se.Variants, &ast.Variant{
				Key:     d.variantKey(d.node(v, "key")),
				Value:   d.pattern(d.node(v, "value")),
				Default: isDefault,
			})
		}
		return se
	}
	return d.inline(n)
}

func (d *decoder) inline(n *Node) ast.InlineExpression {
	if n == nil {
		d.fail("missing inline expression")
		return nil
	}
	switch n.Type {
	case "StringLiteral":
		return &ast.StringLiteral{Value: d.str(n, "value")}
	case "NumberLiteral":
		return &ast.NumberLiteral{Value: d.str(n, "value")}
	case "VariableReference":
		return &ast.VariableReference{ID: d.ident(d.node(n, "id"))}
	case "MessageReference":
		return &ast.MessageReference{
			ID:        d.ident(d.node(n, "id")),
			Attribute: d.ident(d.node(n, "attribute")),
		}
	case "TermReference":
		return &ast.TermReference{
			ID:        d.ident(d.node(n, "id")),
			Attribute: d.ident(d.node(n, "attribute")),
			Arguments: d.callArguments(d.node(n, "arguments")),
		}
	case "FunctionReference":
		return &ast.FunctionReference{
			ID:        d.ident(d.node(n, "id")),
			Arguments: d.callArguments(d.node(n, "arguments")),
		}
	case "Placeable":
		return d.placeable(n)
	}
	d.fail("unknown expression type %q", n.Type)
	return nil
}

func (d *decoder) variantKey(n *Node) ast.VariantKey {
	if n == nil {
		d.fail("missing variant key")
		return nil
	}
	switch n.Type {
	case "Identifier":
		return d.ident(n)
	case "NumberLiteral":
		return &ast.NumberLiteral{Value: d.str(n, "value")}
	}
	d.fail("unknown variant key %q", n.Type)
	return nil
}

func (d *decoder) callArguments(n *Node) *ast.CallArguments {
	if n == nil {
		return nil
	}
	args := &ast.CallArguments{}
	for _, p := range d.nodes(n, "positional") {
		args.Positional = append(args.Positional, d.inline(p))
	}
	for _, na := range d.nodes(n, "named") {
		lit, ok := d.inline(d.node(na, "value")).(ast.Literal)
		if !ok {
			d.fail("named argument value must be a literal")
		}
		args.Named = append(args.Named, &ast.NamedArgument{
			Name:  d.ident(d.node(na, "name")),
			Value: lit,
		})
	}
	return args
}
