package resolver

import (
	"golang.org/x/text/language"

	"fluentkit/internal/ast"
	"fluentkit/internal/memo"
	"fluentkit/internal/value"
)

// Function is a callable registered under an uppercase name, e.g. NUMBER.
type Function func(positional []value.Value, named value.Args) value.Value

// Formatter may take over the display of a value. It returns false to fall
// back to the value's own String form.
type Formatter func(v value.Value, lm *memo.LangMemoizer) (string, bool)

// Env is what the resolver needs from a bundle.
type Env interface {
	Message(id string) (*ast.Message, bool)
	Term(id string) (*ast.Term, bool)
	Function(name string) (Function, bool)
	Memo() *memo.Memoizer
	Locale() language.Tag
	UseIsolating() bool
	Transform() func(string) string
	Formatter() Formatter
}
