package bundle

import (
	"fluentkit/internal/memo"
)

// Option configures a Bundle.
type Option func(*Bundle)

// WithIsolation toggles U+2068/U+2069 around placeables. On by default.
func WithIsolation(on bool) Option {
	return func(b *Bundle) { b.isolating = on }
}

// WithTransform sets a function applied to every text element.
func WithTransform(fn func(string) string) Option {
	return func(b *Bundle) { b.transform = fn }
}

// WithFormatter sets the value formatter, e.g. IntlFormatter.
func WithFormatter(f Formatter) Option {
	return func(b *Bundle) { b.formatter = f }
}

// WithMemoizer shares a memoizer between bundles of the same owner.
func WithMemoizer(m *memo.Memoizer) Option {
	return func(b *Bundle) {
		if m != nil {
			b.memo = m
		}
	}
}
