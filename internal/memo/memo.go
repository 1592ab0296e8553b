// Package memo caches expensive locale-bound helpers (plural rules, number
// formatters) per locale and argument set.
//
// A Memoizer is plain state owned by one bundle. It is not safe for concurrent use.
package memo

import (
	"reflect"

	"golang.org/x/text/language"
)

// Key identifies constructor arguments inside one cache.
type Key interface {
	Key() string
}

// NoArgs: для конструкторов без аргументов.
type NoArgs struct{}

func (NoArgs) Key() string { return "" }

// Memoizable is implemented by types that know how to build themselves for a
// locale. Construct is called on the zero value of T.
type Memoizable[T any] interface {
	Construct(locale language.Tag, args Key) (T, error)
}

type cacheKey struct {
	typ  reflect.Type
	args string
}

type entry struct {
	val any
	err error
}

// Stats: счётчики для тестов и --timings.
type Stats struct {
	Constructions int
	Hits          int
}

// Memoizer holds one LangMemoizer per locale.
type Memoizer struct {
	langs map[string]*LangMemoizer
}

func New() *Memoizer {
	return &Memoizer{langs: make(map[string]*LangMemoizer)}
}

// ForLang returns the cache for one locale, creating it on first use.
func (m *Memoizer) ForLang(locale language.Tag) *LangMemoizer {
	key := locale.String()
	lm, ok := m.langs[key]
	if !ok {
		lm = &LangMemoizer{locale: locale, entries: make(map[cacheKey]entry)}
		m.langs[key] = lm
	}
	return lm
}

// Stats sums the counters of all locales.
func (m *Memoizer) Stats() Stats {
	var s Stats
	for _, lm := range m.langs {
		s.Constructions += lm.stats.Constructions
		s.Hits += lm.stats.Hits
	}
	return s
}

// LangMemoizer: кэш одной локали.
type LangMemoizer struct {
	locale  language.Tag
	entries map[cacheKey]entry
	stats   Stats
}

func (lm *LangMemoizer) Locale() language.Tag { return lm.locale }

func (lm *LangMemoizer) Stats() Stats { return lm.stats }

// Get returns the cached T for (locale, args), constructing it at most once.
// A construction error is cached as well and returned on every later call.
func Get[T Memoizable[T]](m *Memoizer, locale language.Tag, args Key) (T, error) {
	return GetLang[T](m.ForLang(locale), args)
}

// GetLang is Get on a per-locale view.
func GetLang[T Memoizable[T]](lm *LangMemoizer, args Key) (T, error) {
	if args == nil {
		args = NoArgs{}
	}
	k := cacheKey{typ: reflect.TypeFor[T](), args: args.Key()}
	if e, ok := lm.entries[k]; ok {
		lm.stats.Hits++
		v, _ := e.val.(T)
		return v, e.err
	}

	var zero T
	v, err := zero.Construct(lm.locale, args)
	lm.stats.Constructions++
	lm.entries[k] = entry{val: v, err: err}
	return v, err
}
