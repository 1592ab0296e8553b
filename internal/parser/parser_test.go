package parser_test

import (
	"strings"
	"testing"

	"fluentkit/internal/ast"
	"fluentkit/internal/diag"
	"fluentkit/internal/parser"
	"fluentkit/internal/source"
)

// parseOK разбирает вход и требует отсутствия ошибок
func parseOK(t *testing.T, input string) *ast.Resource {
	t.Helper()
	res, errs := parser.Parse(input)
	for _, err := range errs {
		t.Errorf("unexpected error: %s (%s)", err.Error(), err.Kind)
	}
	if t.Failed() {
		t.FailNow()
	}
	return res
}

func onlyMessage(t *testing.T, res *ast.Resource) *ast.Message {
	t.Helper()
	if len(res.Body) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(res.Body))
	}
	msg, ok := res.Body[0].(*ast.Message)
	if !ok {
		t.Fatalf("expected *ast.Message, got %T", res.Body[0])
	}
	return msg
}

// patternText склеивает текст шаблона, плейсхолдеры заменяются на "{}"
func patternText(p *ast.Pattern) string {
	if p == nil {
		return "<nil>"
	}
	var sb strings.Builder
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *ast.TextElement:
			sb.WriteString(el.Value)
		case *ast.Placeable:
			sb.WriteString("{}")
		}
	}
	return sb.String()
}

func TestParse_SimpleMessage(t *testing.T) {
	msg := onlyMessage(t, parseOK(t, "hello = Hello, world!\n"))
	if msg.ID.Name != "hello" {
		t.Errorf("id = %q", msg.ID.Name)
	}
	if got := patternText(msg.Value); got != "Hello, world!" {
		t.Errorf("value = %q", got)
	}
	if !msg.Value.IsSimple() {
		t.Errorf("expected a simple pattern")
	}
	if msg.Span.Start != 0 || msg.Span.End != 21 {
		t.Errorf("span = %d..%d, want 0..21", msg.Span.Start, msg.Span.End)
	}
}

func TestParse_Patterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing spaces", "key = value   \n", "value"},
		{"no newline at eof", "key = value", "value"},
		{"block", "key =\n    value\n", "value"},
		{"continuation", "key = first\n    second\n", "first\nsecond"},
		{"common indent", "key =\n    one\n      two\n    three\n", "one\n  two\nthree"},
		{"blank line inside", "key =\n    a\n\n    b\n", "a\n\nb"},
		{"blank lines after", "key = a\n\n\n", "a"},
		{"placeable", "key = Hi, { $name }!\n", "Hi, {}!"},
		{"placeable column zero", "key =\n    a\n{ $x }\n", "    a\n{}"},
		{"leading blank lines", "key =\n\n\n  text\n", "text"},
		{"unicode", "key = Привет, мир\n", "Привет, мир"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := onlyMessage(t, parseOK(t, tt.input))
			if got := patternText(msg.Value); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_AdjacentTextMerged(t *testing.T) {
	msg := onlyMessage(t, parseOK(t, "key =\n    one\n    two\n"))
	if len(msg.Value.Elements) != 1 {
		t.Fatalf("expected merged text, got %d elements", len(msg.Value.Elements))
	}
}

func TestParse_Term(t *testing.T) {
	res := parseOK(t, "-brand = Firefox\n    .gender = masculine\n")
	if len(res.Body) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(res.Body))
	}
	term, ok := res.Body[0].(*ast.Term)
	if !ok {
		t.Fatalf("expected *ast.Term, got %T", res.Body[0])
	}
	if term.ID.Name != "brand" || patternText(term.Value) != "Firefox" {
		t.Errorf("term = %s / %q", term.ID.Name, patternText(term.Value))
	}
	if a := term.Attribute("gender"); a == nil || patternText(a.Value) != "masculine" {
		t.Errorf("gender attribute missing")
	}
}

func TestParse_Attributes(t *testing.T) {
	msg := onlyMessage(t, parseOK(t, "login =\n    .placeholder = Email\n\n    .title = Your email\n"))
	if msg.Value != nil {
		t.Errorf("expected no value, got %q", patternText(msg.Value))
	}
	if len(msg.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(msg.Attributes))
	}
	if msg.Attributes[0].ID.Name != "placeholder" || patternText(msg.Attributes[0].Value) != "Email" {
		t.Errorf("attr[0] = %s %q", msg.Attributes[0].ID.Name, patternText(msg.Attributes[0].Value))
	}
	if patternText(msg.Attribute("title").Value) != "Your email" {
		t.Errorf("title = %q", patternText(msg.Attribute("title").Value))
	}
}

func TestParse_SelectExpression(t *testing.T) {
	input := "emails = { $n ->\n    [one] One email\n   *[other] { $n } emails\n}\n"
	msg := onlyMessage(t, parseOK(t, input))
	if len(msg.Value.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(msg.Value.Elements))
	}
	pl := msg.Value.Elements[0].(*ast.Placeable)
	sel, ok := pl.Expression.(*ast.SelectExpression)
	if !ok {
		t.Fatalf("expected select, got %T", pl.Expression)
	}
	if v, ok := sel.Selector.(*ast.VariableReference); !ok || v.ID.Name != "n" {
		t.Errorf("selector = %#v", sel.Selector)
	}
	if len(sel.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(sel.Variants))
	}
	if sel.Variants[0].KeyName() != "one" || sel.Variants[0].Default {
		t.Errorf("variant[0] = %s default=%v", sel.Variants[0].KeyName(), sel.Variants[0].Default)
	}
	if got := patternText(sel.Variants[0].Value); got != "One email" {
		t.Errorf("variant[0] value = %q", got)
	}
	def := sel.DefaultVariant()
	if def == nil || def.KeyName() != "other" {
		t.Fatalf("default variant = %v", def)
	}
	if got := patternText(def.Value); got != "{} emails" {
		t.Errorf("default value = %q", got)
	}
}

func TestParse_NumberVariantKey(t *testing.T) {
	input := "key = { $n ->\n    [0] none\n    [1.5] some\n   *[other] many\n}\n"
	msg := onlyMessage(t, parseOK(t, input))
	sel := msg.Value.Elements[0].(*ast.Placeable).Expression.(*ast.SelectExpression)
	if _, ok := sel.Variants[0].Key.(*ast.NumberLiteral); !ok {
		t.Errorf("expected number key, got %T", sel.Variants[0].Key)
	}
	if sel.Variants[1].KeyName() != "1.5" {
		t.Errorf("key = %q", sel.Variants[1].KeyName())
	}
}

func TestParse_Expressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, e ast.Expression)
	}{
		{"string", `key = { "a\"b" }`, func(t *testing.T, e ast.Expression) {
			if s, ok := e.(*ast.StringLiteral); !ok || s.Value != `a\"b` {
				t.Errorf("got %#v", e)
			}
		}},
		{"number", "key = { -3.14 }", func(t *testing.T, e ast.Expression) {
			if n, ok := e.(*ast.NumberLiteral); !ok || n.Value != "-3.14" {
				t.Errorf("got %#v", e)
			}
		}},
		{"message ref", "key = { other }", func(t *testing.T, e ast.Expression) {
			if m, ok := e.(*ast.MessageReference); !ok || m.ID.Name != "other" || m.Attribute != nil {
				t.Errorf("got %#v", e)
			}
		}},
		{"message attr", "key = { other.title }", func(t *testing.T, e ast.Expression) {
			if m, ok := e.(*ast.MessageReference); !ok || m.Attribute == nil || m.Attribute.Name != "title" {
				t.Errorf("got %#v", e)
			}
		}},
		{"term ref", "key = { -brand }", func(t *testing.T, e ast.Expression) {
			if r, ok := e.(*ast.TermReference); !ok || r.ID.Name != "brand" || r.Arguments != nil {
				t.Errorf("got %#v", e)
			}
		}},
		{"term call", `key = { -brand(case: "genitive") }`, func(t *testing.T, e ast.Expression) {
			r, ok := e.(*ast.TermReference)
			if !ok || r.Arguments == nil || len(r.Arguments.Named) != 1 {
				t.Fatalf("got %#v", e)
			}
			if r.Arguments.Named[0].Name.Name != "case" {
				t.Errorf("named = %s", r.Arguments.Named[0].Name.Name)
			}
		}},
		{"function", "key = { NUMBER($n, minimumFractionDigits: 2) }", func(t *testing.T, e ast.Expression) {
			f, ok := e.(*ast.FunctionReference)
			if !ok || f.ID.Name != "NUMBER" {
				t.Fatalf("got %#v", e)
			}
			if len(f.Arguments.Positional) != 1 || len(f.Arguments.Named) != 1 {
				t.Fatalf("args = %d positional, %d named", len(f.Arguments.Positional), len(f.Arguments.Named))
			}
			if n, ok := f.Arguments.Named[0].Value.(*ast.NumberLiteral); !ok || n.Value != "2" {
				t.Errorf("named value = %#v", f.Arguments.Named[0].Value)
			}
		}},
		{"function no args", "key = { NOW() }", func(t *testing.T, e ast.Expression) {
			f, ok := e.(*ast.FunctionReference)
			if !ok || len(f.Arguments.Positional)+len(f.Arguments.Named) != 0 {
				t.Errorf("got %#v", e)
			}
		}},
		{"nested placeable", `key = { { "x" } }`, func(t *testing.T, e ast.Expression) {
			if _, ok := e.(*ast.Placeable); !ok {
				t.Errorf("got %#v", e)
			}
		}},
		{"term attr selector", "key = { -brand.gender ->\n   *[masculine] his\n}", func(t *testing.T, e ast.Expression) {
			s, ok := e.(*ast.SelectExpression)
			if !ok {
				t.Fatalf("got %#v", e)
			}
			if r, ok := s.Selector.(*ast.TermReference); !ok || r.Attribute == nil {
				t.Errorf("selector = %#v", s.Selector)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := onlyMessage(t, parseOK(t, tt.input))
			pl, ok := msg.Value.Elements[0].(*ast.Placeable)
			if !ok {
				t.Fatalf("expected placeable, got %T", msg.Value.Elements[0])
			}
			tt.check(t, pl.Expression)
		})
	}
}

func TestParse_Comments(t *testing.T) {
	t.Run("attached", func(t *testing.T) {
		msg := onlyMessage(t, parseOK(t, "# Greeting\n# second line\nhello = Hi\n"))
		if msg.Comment == nil {
			t.Fatalf("comment not attached")
		}
		if got := strings.Join(msg.Comment.Content, "|"); got != "Greeting|second line" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("detached by blank line", func(t *testing.T) {
		res := parseOK(t, "# Standalone\n\nhello = Hi\n")
		if len(res.Body) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(res.Body))
		}
		if _, ok := res.Body[0].(*ast.Comment); !ok {
			t.Errorf("entry 0 = %T", res.Body[0])
		}
		if res.Body[1].(*ast.Message).Comment != nil {
			t.Errorf("comment must not attach across a blank line")
		}
	})

	t.Run("levels", func(t *testing.T) {
		res := parseOK(t, "### Resource\n\n## Group\n# Regular\n")
		kinds := []ast.CommentKind{ast.CommentResource, ast.CommentGroup, ast.CommentRegular}
		if len(res.Body) != len(kinds) {
			t.Fatalf("expected %d entries, got %d", len(kinds), len(res.Body))
		}
		for i, k := range kinds {
			c, ok := res.Body[i].(*ast.Comment)
			if !ok || c.Kind != k {
				t.Errorf("entry %d = %#v, want %s", i, res.Body[i], k)
			}
		}
	})

	t.Run("group comment never attaches", func(t *testing.T) {
		res := parseOK(t, "## Group\nhello = Hi\n")
		if len(res.Body) != 2 || res.Body[1].(*ast.Message).Comment != nil {
			t.Errorf("group comment attached to message")
		}
	})

	t.Run("empty line", func(t *testing.T) {
		res := parseOK(t, "#\n# text\n")
		c := res.Body[0].(*ast.Comment)
		if len(c.Content) != 2 || c.Content[0] != "" || c.Content[1] != "text" {
			t.Errorf("content = %q", c.Content)
		}
	})

	t.Run("comment before junk", func(t *testing.T) {
		res, errs := parser.Parse("# note\n123\n")
		if len(errs) != 1 || len(res.Body) != 2 {
			t.Fatalf("errs=%d entries=%d", len(errs), len(res.Body))
		}
		if _, ok := res.Body[0].(*ast.Comment); !ok {
			t.Errorf("entry 0 = %T", res.Body[0])
		}
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  parser.ErrorKind
		arg   string
	}{
		{"missing equals", "key value\n", parser.ExpectedToken, "="},
		{"missing message field", "key =\n", parser.ExpectedMessageField, "key"},
		{"missing term field", "-term =\n", parser.ExpectedTermField, "term"},
		{"junk at top level", "123\n", parser.ExpectedCharRange, "a-zA-Z"},
		{"indented entry", "  key = value\n", parser.ExpectedCharRange, "a-zA-Z"},
		{"comment without space", "#foo\n", parser.ExpectedToken, " "},
		{"four hashes", "#### x\n", parser.ExpectedToken, " "},
		{"unbalanced brace", "key = a } b\n", parser.UnbalancedClosingBrace, ""},
		{"unclosed placeable", "key = { $x\n", parser.ExpectedToken, "}"},
		{"empty placeable", "key = { }\n", parser.ExpectedInlineExpression, ""},
		{"missing default", "key = { $n ->\n    [one] One\n}\n", parser.MissingDefaultVariant, ""},
		{"two defaults", "key = { $n ->\n   *[one] One\n   *[other] Other\n}\n", parser.MultipleDefaultVariants, ""},
		{"no variants", "key = { $n ->\n}\n", parser.MissingVariants, ""},
		{"variant without value", "key = { $n ->\n   *[other]\n}\n", parser.MissingValue, ""},
		{"empty variant key", "key = { $n ->\n   *[] A\n}\n", parser.MissingVariantKey, ""},
		{"select on one line", "key = { $n -> *[a] A }\n", parser.ExpectedToken, "\n"},
		{"message selector", "key = { msg ->\n   *[a] A\n}\n", parser.MessageReferenceAsSelector, ""},
		{"message attr selector", "key = { msg.attr ->\n   *[a] A\n}\n", parser.MessageAttributeAsSelector, ""},
		{"term selector", "key = { -term ->\n   *[a] A\n}\n", parser.TermReferenceAsSelector, ""},
		{"placeable selector", "key = { { $n } ->\n   *[a] A\n}\n", parser.ExpectedSimpleExpressionAsSelector, ""},
		{"term attr placeable", "key = { -term.attr }\n", parser.TermAttributeAsPlaceable, ""},
		{"lowercase callee", "key = { func() }\n", parser.ForbiddenCallee, ""},
		{"attribute callee", "key = { msg.attr() }\n", parser.ForbiddenCallee, ""},
		{"variant accessor", "key = { -term[x] }\n", parser.ForbiddenVariantAccessor, ""},
		{"named not literal", "key = { NUMBER(a: $x) }\n", parser.MissingLiteral, ""},
		{"duplicate named", "key = { NUMBER(a: 1, a: 2) }\n", parser.DuplicatedNamedArgument, "a"},
		{"positional after named", "key = { NUMBER(a: 1, 2) }\n", parser.PositionalArgumentFollowsNamed, ""},
		{"unterminated string", "key = { \"abc }\n", parser.UnterminatedStringExpression, ""},
		{"unknown escape", "key = { \"\\x\" }\n", parser.UnknownEscapeSequence, `\x`},
		{"bad unicode escape", "key = { \"\\u12z4\" }\n", parser.InvalidUnicodeEscapeSequence, "12z"},
		{"bad number", "key = { 1. }\n", parser.ExpectedCharRange, "0-9"},
		{"missing closing paren", "key = { NUMBER($n }\n", parser.ExpectedToken, ")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, errs := parser.Parse(tt.input)
			if len(errs) != 1 {
				for _, e := range errs {
					t.Logf("error: %s", e.Error())
				}
				t.Fatalf("expected 1 error, got %d", len(errs))
			}
			err := errs[0]
			if err.Kind != tt.kind || err.Arg != tt.arg {
				t.Errorf("error = %s(%q), want %s(%q)", err.Kind, err.Arg, tt.kind, tt.arg)
			}
			if !err.HasSlice {
				t.Errorf("error has no junk slice")
			}

			junk := res.Junk()
			if len(junk) != 1 {
				t.Fatalf("expected 1 junk entry, got %d", len(junk))
			}
			if junk[0].Content != tt.input {
				t.Errorf("junk content = %q, want %q", junk[0].Content, tt.input)
			}
			ann := junk[0].Annotations
			if len(ann) != 1 || ann[0].Code != tt.kind.Code().ID() || ann[0].Message != err.Error() {
				t.Errorf("annotations = %#v", ann)
			}
		})
	}
}

func TestParse_Recovery(t *testing.T) {
	res, errs := parser.Parse("bad = }\ngood = ok\n")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if len(res.Body) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Body))
	}
	if j, ok := res.Body[0].(*ast.Junk); !ok || j.Content != "bad = }\n" {
		t.Errorf("entry 0 = %#v", res.Body[0])
	}
	if m, ok := res.Body[1].(*ast.Message); !ok || m.ID.Name != "good" {
		t.Errorf("entry 1 = %#v", res.Body[1])
	}
}

func TestParse_BrokenAttributeBecomesJunk(t *testing.T) {
	res, errs := parser.Parse("key = Value\n    .attr\nnext = ok\n")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if len(res.Body) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Body))
	}
	msg := res.Body[0].(*ast.Message)
	if patternText(msg.Value) != "Value" || len(msg.Attributes) != 0 {
		t.Errorf("message = %q with %d attributes", patternText(msg.Value), len(msg.Attributes))
	}
	if j, ok := res.Body[1].(*ast.Junk); !ok || j.Content != "    .attr\n" {
		t.Errorf("entry 1 = %#v", res.Body[1])
	}
}

func TestParse_TrailingSpacesAtEOF(t *testing.T) {
	res := parseOK(t, "key = value\n   ")
	onlyMessage(t, res)
}

func TestParseIdentifierRule(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"abc = x", true},
		{"a-b_c9 = x", true},
		{"Z = x", true},
		{"9abc = x", false},
		{"_abc = x", false},
		{"ключ = x", false},
	}
	for _, tt := range tests {
		_, errs := parser.Parse(tt.input)
		if (len(errs) == 0) != tt.ok {
			t.Errorf("%q: ok=%v, errors=%d", tt.input, tt.ok, len(errs))
		}
	}
}

func TestParseFile_Reporter(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("errors.ftl", []byte("a = }\nb = }\nc = }\n")))
	bag := diag.NewBag(10)

	_, errs := parser.ParseFile(t.Context(), file, parser.Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}
	if bag.Len() != 2 {
		t.Errorf("reporter got %d diagnostics, want 2", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SynUnbalancedClosingBrace {
			t.Errorf("code = %s", d.Code.ID())
		}
	}
}

// Парсер тотален: на любом входе он завершается и покрывает вход записями.
func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"", "\n\n\n", "=", "{", "}", "-", "--", "- x", "#", "##", "###",
		"key = {", "key = { $", "key = { -", "key = { ->", "key = { $x ->",
		"key = { $x ->\n[", "key = { $x ->\n*", "key = { $x ->\n*[",
		"key = { $x ->\n*[a]", "key = { F(", "key = { F(a:", "key = { F(a: 1,",
		"key = \"", ".attr = x", "   .attr = x", "key = a\n .", "key = a\n .b",
		"key = { \"\\u", "key = {{{{{", "key = }}}}",
		"\x00\x01\x02", "key = \xff\xfe",
	}
	for _, in := range inputs {
		res, _ := parser.Parse(in)
		if res == nil {
			t.Fatalf("%q: nil resource", in)
		}
		for _, e := range res.Body {
			sp := e.Pos()
			if sp.Start > sp.End || int(sp.End) > len(in) {
				t.Errorf("%q: bad entry span %d..%d", in, sp.Start, sp.End)
			}
		}
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"hello = Hello\n",
		"-term = T\n    .attr = A\n",
		"key = { $n ->\n    [one] One\n   *[other] Many\n}\n",
		"# c\n## g\n### r\n",
		"key = { NUMBER($n, style: \"percent\") }\n",
		"bad = }\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		res, errs := parser.Parse(input)
		if res == nil {
			t.Fatal("nil resource")
		}
		if len(errs) != len(res.Junk()) {
			t.Fatalf("%d errors but %d junk entries", len(errs), len(res.Junk()))
		}
	})
}

func BenchmarkParse(b *testing.B) {
	var sb strings.Builder
	for i := range 200 {
		sb.WriteString("# comment\n")
		sb.WriteString("key")
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString(" = Hello { $name }, you have { $n ->\n    [one] one message\n   *[other] { $n } messages\n}\n")
		sb.WriteString("    .title = Title\n\n")
	}
	input := sb.String()
	b.ResetTimer()
	for b.Loop() {
		parser.Parse(input)
	}
}
