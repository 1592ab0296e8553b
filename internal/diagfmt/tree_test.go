package diagfmt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"fluentkit/internal/lexer"
	"fluentkit/internal/parser"
	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

func parseSample(t *testing.T, text string) *source.FileSet {
	t.Helper()
	fs := source.NewFileSet()
	fs.AddVirtual("main.ftl", []byte(text))
	return fs
}

func TestFormatTree(t *testing.T) {
	fs := parseSample(t, "# Greeting\nhello = Hello, { $name }!\n    .title = Hi\n")
	res, errs := parser.ParseFile(context.Background(), fs.Get(0), parser.Options{})
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	var buf bytes.Buffer
	if err := FormatTree(&buf, res); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Resource",
		"  body[0]: Message",
		"    id: hello",
		"    value: Pattern",
		`      elements[0]: TextElement value="Hello, "`,
		"      elements[1]: Placeable",
		"        expression: VariableReference",
		"          id: name",
		`      elements[2]: TextElement value="!"`,
		"    attributes[0]: Attribute",
		"      id: title",
		"      value: Pattern",
		`        elements[0]: TextElement value="Hi"`,
		`    comment: Comment content="Greeting"`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("tree mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := parseSample(t, "a = b\n")
	lx := lexer.New(fs.Get(0), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `Ident               "a" at 1:1-1:2`) {
		t.Fatalf("missing ident line:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Fatalf("missing EOF:\n%s", out)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"kind": "Equals"`) {
		t.Fatalf("missing Equals token:\n%s", buf.String())
	}
}
