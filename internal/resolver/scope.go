package resolver

import (
	"slices"

	"fluentkit/internal/ast"
	"fluentkit/internal/memo"
	"fluentkit/internal/value"
)

const (
	// MaxDepth ограничивает вложенность ссылок. Должен быть меньше MaxPlaceables.
	MaxDepth = 50
	// MaxPlaceables caps the placeables written by one top-level call.
	MaxPlaceables = 100
)

// Scope carries the state of one resolution call: the caller arguments,
// the term-local arguments and the guards.
type Scope struct {
	env   Env
	args  value.Args
	local *value.Args
	lm    *memo.LangMemoizer

	traveled   []*ast.Pattern
	depth      int
	placeables int
	dirty      bool

	errs *[]error
}

// NewScope prepares a scope over env. Errors are appended to errs, which may
// be nil when the caller does not collect them.
func NewScope(env Env, args value.Args, errs *[]error) *Scope {
	s := &Scope{env: env, args: args, errs: errs}
	if m := env.Memo(); m != nil {
		s.lm = m.ForLang(env.Locale())
	}
	return s
}

func (s *Scope) addError(err *Error) {
	if s.errs != nil {
		*s.errs = append(*s.errs, err)
	}
}

// Dirty reports whether the placeable limit was hit.
func (s *Scope) Dirty() bool { return s.dirty }

// track resolves a referenced pattern, guarding against cycles and depth.
func (s *Scope) track(w writer, p *ast.Pattern, node string) {
	if slices.Contains(s.traveled, p) || s.depth >= MaxDepth {
		s.addError(&Error{Kind: Cyclic})
		w.WriteString(value.Error{Node: node}.String())
		return
	}
	s.traveled = append(s.traveled, p)
	s.depth++
	s.writePattern(w, p)
	s.depth--
	s.traveled = s.traveled[:len(s.traveled)-1]
}

// lookupVariable reads local args inside a term, call args otherwise.
func (s *Scope) lookupVariable(name string) (value.Value, bool) {
	if s.local != nil {
		return s.local.Get(name)
	}
	return s.args.Get(name)
}
