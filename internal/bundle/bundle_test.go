package bundle_test

import (
	"errors"
	"slices"
	"testing"

	"golang.org/x/text/language"

	"fluentkit/internal/ast"
	"fluentkit/internal/bundle"
	"fluentkit/internal/parser"
	"fluentkit/internal/value"
)

func mustParse(t *testing.T, src string) *ast.Resource {
	t.Helper()
	res, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return res
}

func newBundle(t *testing.T, locale string, src string, opts ...bundle.Option) *bundle.Bundle {
	t.Helper()
	opts = append([]bundle.Option{bundle.WithIsolation(false)}, opts...)
	b := bundle.New([]language.Tag{language.MustParse(locale)}, opts...)
	b.AddResource(mustParse(t, src))
	return b
}

func TestAddResourceOverrides(t *testing.T) {
	b := newBundle(t, "en", "hello = first\n-brand = A\nbrand = message\n")
	b.AddResource(mustParse(t, "hello = second\n-brand = B\n"))

	got, errs, err := b.Format("hello", value.Args{})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Format: %v %v", err, errs)
	}
	if got != "second" {
		t.Fatalf("hello = %q, want the later definition", got)
	}
	term, ok := b.Term("brand")
	if !ok || term.Value.Elements[0].(*ast.TextElement).Value != "B" {
		t.Fatalf("term was not replaced")
	}
	// сообщения и термины живут в разных пространствах имён
	got, _, _ = b.Format("brand", value.Args{})
	if got != "message" {
		t.Fatalf("brand = %q", got)
	}
}

func TestAddResourceStrict(t *testing.T) {
	b := newBundle(t, "en", "hello = first\n-brand = A\n")
	errs := b.AddResourceStrict(mustParse(t, "hello = second\n-brand = B\nnew = yes\n"))
	if len(errs) != 2 {
		t.Fatalf("errors = %v, want 2", errs)
	}
	var oe *bundle.OverrideError
	if !errors.As(errs[0], &oe) || oe.Kind != bundle.KindMessage || oe.ID != "hello" {
		t.Fatalf("first error = %v", errs[0])
	}
	if errs[1].Error() != `Attempt to override an existing term: "brand"` {
		t.Fatalf("second error = %q", errs[1].Error())
	}
	if got, _, _ := b.Format("hello", value.Args{}); got != "first" {
		t.Fatalf("hello = %q, want the earlier definition", got)
	}
	if !b.HasMessage("new") {
		t.Fatalf("non-colliding entries must be added")
	}
}

func TestResourcesInOrder(t *testing.T) {
	first := mustParse(t, "a = A\n")
	second := mustParse(t, "a = B\n")
	third := mustParse(t, "b = C\n")
	b := bundle.New([]language.Tag{language.English})
	b.AddResource(first)
	b.AddResource(second)
	b.AddResourceStrict(third)

	got := b.Resources()
	if !slices.Equal(got, []*ast.Resource{first, second, third}) {
		t.Fatalf("resources = %v", got)
	}
	got[0] = nil
	if b.Resources()[0] != first {
		t.Fatalf("Resources must return a copy")
	}
}

func TestFormatVariable(t *testing.T) {
	b := newBundle(t, "en", "welcome = Hello, { $name }!\n")

	got, errs, err := b.Format("welcome", value.NewArgs("name", "Ann"))
	if err != nil || len(errs) != 0 {
		t.Fatalf("Format: %v %v", err, errs)
	}
	if got != "Hello, Ann!" {
		t.Fatalf("got %q", got)
	}

	got, errs, err = b.Format("welcome", value.Args{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Hello, {$name}!" {
		t.Fatalf("missing variable: got %q", got)
	}
	if len(errs) != 1 || errs[0].Error() != "Unknown variable: $name" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestFormatIsolatesByDefault(t *testing.T) {
	b := bundle.New([]language.Tag{language.English})
	b.AddResource(mustParse(t, "welcome = Hello, { $name }!\n"))
	got, _, _ := b.Format("welcome", value.NewArgs("name", "Ann"))
	if got != "Hello, \u2068Ann\u2069!" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatLookupErrors(t *testing.T) {
	b := newBundle(t, "en", "attrs =\n    .title = T\n")
	if _, _, err := b.Format("nope", value.Args{}); !errors.Is(err, bundle.ErrMessageNotFound) {
		t.Fatalf("missing: err = %v", err)
	}
	if _, _, err := b.Format("attrs", value.Args{}); !errors.Is(err, bundle.ErrNoValue) {
		t.Fatalf("no value: err = %v", err)
	}
}

func TestFormatMessage(t *testing.T) {
	b := newBundle(t, "en", `login = Sign in
    .title = Sign in as { $user }
    .accesskey = S
`)
	fm, errs, err := b.FormatMessage("login", value.NewArgs("user", "ann"))
	if err != nil || len(errs) != 0 {
		t.Fatalf("FormatMessage: %v %v", err, errs)
	}
	if !fm.HasValue || fm.Value != "Sign in" {
		t.Fatalf("value = %q", fm.Value)
	}
	if len(fm.Attributes) != 2 {
		t.Fatalf("attributes = %v", fm.Attributes)
	}
	if v, ok := fm.Attribute("title"); !ok || v != "Sign in as ann" {
		t.Fatalf("title = %q", v)
	}
	if _, _, err := b.FormatMessage("nope", value.Args{}); !errors.Is(err, bundle.ErrMessageNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAddFunction(t *testing.T) {
	b := newBundle(t, "en", "m = { ECHO(\"x\") }\n")
	echo := func(pos []value.Value, _ value.Args) value.Value { return pos[0] }
	if err := b.AddFunction("ECHO", echo); err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	if err := b.AddFunction("ECHO", echo); !errors.Is(err, bundle.ErrFunctionExists) {
		t.Fatalf("duplicate: err = %v", err)
	}
	if got, _, _ := b.Format("m", value.Args{}); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestNumberBuiltin(t *testing.T) {
	src := `fixed = { NUMBER($n, minimumFractionDigits: 2) }
flat = { NUMBER($n, useGrouping: "false") }
pct = { NUMBER($r, style: "percent") }
plain = { $n }
`
	tests := []struct {
		locale string
		id     string
		want   string
	}{
		{"en", "fixed", "1,234.50"},
		{"de", "fixed", "1.234,50"},
		{"en", "flat", "1234.5"},
		{"en", "plain", "1234.5"},
		{"en", "pct", "25%"},
	}
	for _, tt := range tests {
		b := newBundle(t, tt.locale, src, bundle.WithFormatter(bundle.IntlFormatter))
		if err := b.AddBuiltins(); err != nil {
			t.Fatalf("AddBuiltins: %v", err)
		}
		got, errs, err := b.Format(tt.id, value.NewArgs("n", 1234.5, "r", 0.25))
		if err != nil || len(errs) != 0 {
			t.Fatalf("%s/%s: %v %v", tt.locale, tt.id, err, errs)
		}
		if got != tt.want {
			t.Errorf("%s/%s: got %q, want %q", tt.locale, tt.id, got, tt.want)
		}
	}
}

func TestSelectPlural(t *testing.T) {
	b := newBundle(t, "en", `items = { $n ->
    [one] { $n } item
   *[other] { $n } items
}
`)
	for n, want := range map[int]string{1: "1 item", 2: "2 items", 0: "0 items"} {
		got, _, _ := b.Format("items", value.NewArgs("n", n))
		if got != want {
			t.Errorf("n=%d: got %q, want %q", n, got, want)
		}
	}
}

func TestTransform(t *testing.T) {
	b := newBundle(t, "en", "m = ab { $x }\n", bundle.WithTransform(func(s string) string { return "[" + s + "]" }))
	if got, _, _ := b.Format("m", value.NewArgs("x", "y")); got != "[ab ]y" {
		t.Fatalf("got %q", got)
	}
}

func TestMessageIDs(t *testing.T) {
	b := newBundle(t, "en", "zeta = Z\n-brand = B\nalpha = A\n")
	if got := b.MessageIDs(); !slices.Equal(got, []string{"alpha", "zeta"}) {
		t.Fatalf("MessageIDs = %v", got)
	}
}
