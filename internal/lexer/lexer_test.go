package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"fluentkit/internal/diag"
	"fluentkit/internal/lexer"
	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

// ErrorMessages возвращает список сообщений об ошибках
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ftl", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF (без него)
func collectAllTokens(t *testing.T, lx *lexer.Lexer) []token.Token {
	t.Helper()
	tokens := make([]token.Token, 0)
	for range 10000 {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
	t.Fatalf("lexer did not reach EOF, last tokens: %s", tokensToString(tokens[len(tokens)-10:]))
	return nil
}

// expectTokens проверяет последовательность видов токенов
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(t, lx)

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s(%q)", tok.Kind, tok.Text)
	}
	return sb.String()
}

func TestLexer_SimpleMessage(t *testing.T) {
	toks := expectTokens(t, "hello = Hello World\n",
		token.Ident, token.Equals, token.Text)

	if toks[0].Text != "hello" {
		t.Errorf("ident text = %q", toks[0].Text)
	}
	if !toks[1].Has(token.FlagSpaceBefore) {
		t.Errorf("expected FlagSpaceBefore on '='")
	}
	text := toks[2]
	if text.Text != "Hello World\n" {
		t.Errorf("text = %q", text.Text)
	}
	if !text.Has(token.FlagInitial | token.FlagLineFeed) {
		t.Errorf("text flags = %b", text.Flags)
	}
	if text.Has(token.FlagBlank) {
		t.Errorf("text must not be blank")
	}
}

func TestLexer_TermWithAttribute(t *testing.T) {
	toks := expectTokens(t, "-brand = Firefox\n    .gender = masculine\n",
		token.Minus, token.Ident, token.Equals, token.Text,
		token.Dot, token.Ident, token.Equals, token.Text)

	if toks[4].Indent != 4 {
		t.Errorf("dot indent = %d, want 4", toks[4].Indent)
	}
	if toks[5].Text != "gender" {
		t.Errorf("attribute id = %q", toks[5].Text)
	}
}

func TestLexer_AttributeAfterEmptyValue(t *testing.T) {
	expectTokens(t, "key =\n    .title = T\n    .label = L\n",
		token.Ident, token.Equals,
		token.Dot, token.Ident, token.Equals, token.Text,
		token.Dot, token.Ident, token.Equals, token.Text)
}

func TestLexer_Placeable(t *testing.T) {
	toks := expectTokens(t, "msg = Hi { $name }!\n",
		token.Ident, token.Equals, token.Text,
		token.LBrace, token.Dollar, token.Ident, token.RBrace, token.Text)

	if toks[2].Text != "Hi " {
		t.Errorf("text before placeable = %q", toks[2].Text)
	}
	if !toks[4].Has(token.FlagSpaceBefore) {
		t.Errorf("'$' should have FlagSpaceBefore")
	}
	if !toks[5].Adjacent() {
		t.Errorf("identifier after '$' should be adjacent")
	}
	if toks[7].Text != "!\n" {
		t.Errorf("text after placeable = %q", toks[7].Text)
	}
}

func TestLexer_SelectExpression(t *testing.T) {
	input := "emails = { $n ->\n    [one] One email\n   *[other] { $n } emails\n}\n"
	toks := expectTokens(t, input,
		token.Ident, token.Equals,
		token.LBrace, token.Dollar, token.Ident, token.Arrow,
		token.LBracket, token.Ident, token.RBracket, token.Text,
		token.Star, token.LBracket, token.Ident, token.RBracket,
		token.LBrace, token.Dollar, token.Ident, token.RBrace, token.Text,
		token.RBrace, token.Text)

	if !toks[6].Has(token.FlagNewlineBefore) {
		t.Errorf("first variant must follow a newline")
	}
	if toks[9].Text != "One email\n" {
		t.Errorf("variant text = %q", toks[9].Text)
	}
	if !toks[11].Adjacent() {
		t.Errorf("'[' after '*' should be adjacent")
	}
	if toks[18].Text != " emails\n" {
		t.Errorf("default variant tail = %q", toks[18].Text)
	}
}

func TestLexer_NestedPlaceable(t *testing.T) {
	expectTokens(t, "key = {{ \"x\" }}\n",
		token.Ident, token.Equals,
		token.LBrace, token.LBrace, token.String, token.RBrace, token.RBrace,
		token.Text)
}

func TestLexer_CallArguments(t *testing.T) {
	expectTokens(t, "key = { NUMBER($n, minimumFractionDigits: 2) }",
		token.Ident, token.Equals,
		token.LBrace, token.Ident, token.LParen, token.Dollar, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Number, token.RParen, token.RBrace)

	expectTokens(t, "key = { -term(case: \"gen\") }",
		token.Ident, token.Equals,
		token.LBrace, token.Minus, token.Ident, token.LParen,
		token.Ident, token.Colon, token.String, token.RParen, token.RBrace)
}

func TestLexer_MessageAttributeReference(t *testing.T) {
	toks := expectTokens(t, "key = { other.title }",
		token.Ident, token.Equals, token.LBrace, token.Ident, token.Dot, token.Ident, token.RBrace)
	if !toks[4].Adjacent() || !toks[5].Adjacent() {
		t.Errorf("'.' and attribute name should be adjacent")
	}
}

func TestLexer_Comments(t *testing.T) {
	toks := expectTokens(t, "# Comment\n## Group\n### Resource\nkey = v\n",
		token.CommentSign, token.CommentText,
		token.GroupCommentSign, token.CommentText,
		token.ResourceCommentSign, token.CommentText,
		token.Ident, token.Equals, token.Text)

	want := []string{"Comment", "Group", "Resource"}
	for i, w := range want {
		if got := toks[i*2+1].Text; got != w {
			t.Errorf("comment %d = %q, want %q", i, got, w)
		}
	}
}

func TestLexer_EmptyComment(t *testing.T) {
	toks := expectTokens(t, "#\nkey = v",
		token.CommentSign, token.CommentText, token.Ident, token.Equals, token.Text)
	if toks[1].Text != "" {
		t.Errorf("empty comment text = %q", toks[1].Text)
	}
	expectTokens(t, "#", token.CommentSign, token.CommentText)
}

func TestLexer_CommentWithoutSpace(t *testing.T) {
	lx, reporter := makeTestLexer("#nospace\nkey = v\n")
	toks := collectAllTokens(t, lx)
	if toks[1].Kind != token.Invalid || toks[1].Problem != token.ProblemCommentSpace {
		t.Fatalf("expected comment-space problem, got %s", tokensToString(toks))
	}
	if len(reporter.diagnostics) == 0 || reporter.diagnostics[0].Code != diag.LexCommentSpace {
		t.Errorf("expected LexCommentSpace diagnostic, got %v", reporter.ErrorMessages())
	}
	// восстановление: следующая запись лексится нормально
	last := toks[len(toks)-3:]
	if last[0].Kind != token.Ident || last[0].Text != "key" {
		t.Errorf("expected recovery at 'key', got %s", tokensToString(toks))
	}
}

func TestLexer_FourHashes(t *testing.T) {
	expectTokens(t, "####x\n",
		token.ResourceCommentSign, token.Invalid, token.Junk)
}

func TestLexer_BlankLines(t *testing.T) {
	expectTokens(t, "\n\n# c\n\nkey = v\n",
		token.Newline, token.Newline,
		token.CommentSign, token.CommentText,
		token.Newline,
		token.Ident, token.Equals, token.Text)
}

func TestLexer_BlankLineInsidePattern(t *testing.T) {
	toks := expectTokens(t, "a = 1\n\nb = 2\n",
		token.Ident, token.Equals, token.Text, token.Text,
		token.Ident, token.Equals, token.Text)
	if !toks[3].Has(token.FlagBlank | token.FlagLineStart | token.FlagLineFeed) {
		t.Errorf("blank line flags = %b", toks[3].Flags)
	}
}

func TestLexer_MultilinePattern(t *testing.T) {
	toks := expectTokens(t, "multi =\n    Line one\n      Line two\nnext = x",
		token.Ident, token.Equals, token.Text, token.Text,
		token.Ident, token.Equals, token.Text)

	if toks[2].Text != "    Line one\n" || toks[2].Indent != 4 {
		t.Errorf("line one = %q indent %d", toks[2].Text, toks[2].Indent)
	}
	if toks[3].Indent != 6 || !toks[3].Has(token.FlagLineStart) {
		t.Errorf("line two indent %d flags %b", toks[3].Indent, toks[3].Flags)
	}
}

func TestLexer_PlaceableAtColumnZero(t *testing.T) {
	toks := expectTokens(t, "key =\n{ $x }\n",
		token.Ident, token.Equals, token.LBrace, token.Dollar, token.Ident, token.RBrace, token.Text)
	if !toks[2].Has(token.FlagLineStart) {
		t.Errorf("column-zero '{' must carry FlagLineStart")
	}
}

func TestLexer_Junk(t *testing.T) {
	lx, reporter := makeTestLexer("  junk line\nkey = v\n")
	toks := collectAllTokens(t, lx)
	if toks[0].Kind != token.Junk || toks[0].Text != "  junk line\n" {
		t.Fatalf("expected junk token, got %s", tokensToString(toks))
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexJunk {
		t.Errorf("diagnostics = %v", reporter.ErrorMessages())
	}
	if toks[1].Kind != token.Ident {
		t.Errorf("expected entry after junk, got %s", tokensToString(toks))
	}
}

func TestLexer_TrailingSpacesAtEOF(t *testing.T) {
	expectTokens(t, "key = v\n   ", token.Ident, token.Equals, token.Text)
	expectTokens(t, "   ")
}

func TestLexer_UnbalancedBrace(t *testing.T) {
	toks := expectTokens(t, "key = a } b\n",
		token.Ident, token.Equals, token.Invalid, token.Junk)
	if toks[2].Problem != token.ProblemUnbalancedBrace || toks[2].Text != "}" {
		t.Errorf("invalid token = %+v", toks[2])
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    token.Kind
		text    string
		problem token.Problem
	}{
		{"simple", `"abc"`, token.String, `"abc"`, token.ProblemNone},
		{"escapes", `"a\"b\\c\{"`, token.String, `"a\"b\\c\{"`, token.ProblemNone},
		{"unicode4", `"\u0041"`, token.String, `"\u0041"`, token.ProblemNone},
		{"unicode6", `"\U01F602"`, token.String, `"\U01F602"`, token.ProblemNone},
		{"unknown escape", `"\x"`, token.Invalid, `\x`, token.ProblemUnknownEscape},
		{"bad unicode", `"\u00G1"`, token.Invalid, `00G`, token.ProblemInvalidUnicodeEscape},
		{"missing quote", `"abc`, token.Invalid, `"abc }`, token.ProblemMissingQuote},
		{"newline", "\"ab\ncd\"", token.Invalid, `"ab`, token.ProblemUnterminatedString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _ := makeTestLexer("key = { " + tt.input + " }")
			toks := collectAllTokens(t, lx)
			if len(toks) < 4 {
				t.Fatalf("too few tokens: %s", tokensToString(toks))
			}
			tok := toks[3]
			if tok.Kind != tt.kind || tok.Text != tt.text || tok.Problem != tt.problem {
				t.Errorf("got %v %q %v, want %v %q %v", tok.Kind, tok.Text, tok.Problem, tt.kind, tt.text, tt.problem)
			}
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"0", token.Number, "0"},
		{"42", token.Number, "42"},
		{"-3.5", token.Number, "-3.5"},
		{"1.000", token.Number, "1.000"},
		{"1.", token.Invalid, "1."},
		{"-", token.Invalid, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer("key = { " + tt.input + " }")
			toks := collectAllTokens(t, lx)
			tok := toks[3]
			if tok.Kind != tt.kind || tok.Text != tt.text {
				t.Errorf("got %v %q, want %v %q", tok.Kind, tok.Text, tt.kind, tt.text)
			}
		})
	}
}

func TestLexer_VariantNumberKey(t *testing.T) {
	expectTokens(t, "k = { $n ->\n  [-1] neg\n *[0] zero\n}",
		token.Ident, token.Equals,
		token.LBrace, token.Dollar, token.Ident, token.Arrow,
		token.LBracket, token.Number, token.RBracket, token.Text,
		token.Star, token.LBracket, token.Number, token.RBracket, token.Text,
		token.RBrace)
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("a = b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1 != p2 {
		t.Fatalf("Peek is not idempotent: %v vs %v", p1, p2)
	}
	n := lx.Next()
	if n != p1 {
		t.Fatalf("Next after Peek = %v, want %v", n, p1)
	}
	if lx.Next().Kind != token.Equals {
		t.Errorf("expected Equals after ident")
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("a = b")
	collectAllTokens(t, lx)
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestLexer_Reset(t *testing.T) {
	lx, _ := makeTestLexer("a = b\nc = { $d }\n")
	first := collectAllTokens(t, lx)
	lx.Reset()
	second := collectAllTokens(t, lx)
	if tokensToString(first) != tokensToString(second) {
		t.Errorf("restart mismatch:\n%s\n%s", tokensToString(first), tokensToString(second))
	}
}

func TestLexer_SnapshotRestore(t *testing.T) {
	lx, _ := makeTestLexer("a = { $b }")
	lx.Next()
	lx.Next()
	snap := lx.Snapshot()
	want := collectAllTokens(t, lx)
	lx.Restore(snap)
	got := collectAllTokens(t, lx)
	if tokensToString(got) != tokensToString(want) {
		t.Errorf("restore mismatch:\n%s\n%s", tokensToString(got), tokensToString(want))
	}
}

func TestLexer_SkipToNextEntry(t *testing.T) {
	input := "broken = { \n  still broken\n# comment\nok = yes\n"
	lx, _ := makeTestLexer(input)
	off := lx.SkipToNextEntry(3)
	if want := uint32(strings.Index(input, "# comment")); off != want {
		t.Fatalf("SkipToNextEntry = %d, want %d", off, want)
	}
	if tok := lx.Next(); tok.Kind != token.CommentSign {
		t.Errorf("expected CommentSign after resync, got %v", tok.Kind)
	}
}

func TestLexer_NeverStalls(t *testing.T) {
	inputs := []string{
		"",
		"=",
		"key",
		"key =",
		"key = {",
		"key = { $",
		"key = { -",
		"key = { ->",
		"key = { $x -> [",
		"key = { $x -> [a",
		"key = { $x -> *",
		"-",
		"-1 = x",
		".attr = x",
		"key = }}}",
		"key = { \"\\u",
		"  \n\t\n",
		"键 = 值",
		"key = { @ }",
		"key = \n  [a] b\n  *[c] d",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		collectAllTokens(t, lx)
	}
}

func BenchmarkLexer_Resource(b *testing.B) {
	input := strings.Repeat("key = Hello { $name }, you have { $n ->\n    [one] one message\n   *[other] { $n } messages\n}\n", 100)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.ftl", []byte(input)))
	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		for lx.Next().Kind != token.EOF {
		}
	}
}
