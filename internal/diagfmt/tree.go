package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fluentkit/internal/ast"
	"fluentkit/internal/astcodec"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTree печатает AST отступами, по два пробела на уровень.
// Скалярные поля идут в подпись узла, дочерние узлы отдельными строками.
func FormatTree(w io.Writer, res *ast.Resource) error {
	root := buildTree("", astcodec.Encode(res))
	var b strings.Builder
	renderTree(&b, root, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func buildTree(prefix string, n *astcodec.Node) *treeNode {
	if n == nil {
		return &treeNode{label: prefix + "<nil>"}
	}
	if n.Type == "Identifier" {
		name, _ := n.Get("name")
		return &treeNode{label: fmt.Sprintf("%s%v", prefix, name)}
	}

	node := &treeNode{}
	var attrs []string
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case string:
			attrs = append(attrs, f.Name+"="+strconv.Quote(v))
		case bool:
			attrs = append(attrs, f.Name+"="+strconv.FormatBool(v))
		case []string:
			if len(v) > 0 {
				attrs = append(attrs, f.Name+"="+strconv.Quote(strings.Join(v, ",")))
			}
		case *astcodec.Node:
			if v != nil {
				node.children = append(node.children, buildTree(f.Name+": ", v))
			}
		case []*astcodec.Node:
			for i, child := range v {
				node.children = append(node.children, buildTree(fmt.Sprintf("%s[%d]: ", f.Name, i), child))
			}
		}
	}
	node.label = prefix + n.Type
	if len(attrs) > 0 {
		node.label += " " + strings.Join(attrs, " ")
	}
	return node
}

func renderTree(b *strings.Builder, n *treeNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.label)
	b.WriteByte('\n')
	for _, child := range n.children {
		renderTree(b, child, depth+1)
	}
}
