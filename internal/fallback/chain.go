// Package fallback formats messages through an ordered list of bundles.
package fallback

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"golang.org/x/text/language"

	"fluentkit/internal/bundle"
	"fluentkit/internal/trace"
	"fluentkit/internal/value"
)

// ErrNoBundles is returned by New for an empty chain.
var ErrNoBundles = errors.New("fallback chain needs at least one bundle")

// Key is one request of a batch call.
type Key struct {
	ID   string
	Args value.Args
}

// Chain tries its bundles in order. The first bundle that has a message
// answers for it; later bundles are not consulted.
type Chain struct {
	bundles []*bundle.Bundle
}

func New(bundles ...*bundle.Bundle) (*Chain, error) {
	if len(bundles) == 0 {
		return nil, ErrNoBundles
	}
	return &Chain{bundles: append([]*bundle.Bundle(nil), bundles...)}, nil
}

// Locales returns the primary locale of each bundle, in lookup order.
func (c *Chain) Locales() []language.Tag {
	out := make([]language.Tag, len(c.bundles))
	for i, b := range c.bundles {
		out[i] = b.Locale()
	}
	return out
}

// MessageIDs returns the union of message ids over all bundles, sorted.
func (c *Chain) MessageIDs() []string {
	var ids []string
	for _, b := range c.bundles {
		ids = append(ids, b.MessageIDs()...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// find returns the first bundle holding id. Every attempt is traced.
func (c *Chain) find(ctx context.Context, id string) *bundle.Bundle {
	b, _ := c.lookup(ctx, id)
	return b
}

// lookup is find that also returns the locales tried before the hit.
func (c *Chain) lookup(ctx context.Context, id string) (*bundle.Bundle, []language.Tag) {
	tracer := trace.FromContext(ctx)
	var missed []language.Tag
	for _, b := range c.bundles {
		hit := b.HasMessage(id)
		trace.Point(tracer, trace.ScopeLookup, "l10n.lookup", map[string]string{
			"id":     id,
			"locale": b.Locale().String(),
			"hit":    strconv.FormatBool(hit),
		})
		if hit {
			return b, missed
		}
		missed = append(missed, b.Locale())
	}
	return nil, missed
}

// missing records one MissingMessage per locale that lacked id, plus a
// locale-less one when no bundle had it.
func missing(errs []error, id string, missed []language.Tag, found bool) []error {
	for _, l := range missed {
		errs = append(errs, &LocalizationError{Kind: MissingMessage, ID: id, Locale: l})
	}
	if !found {
		errs = append(errs, &LocalizationError{Kind: MissingMessage, ID: id})
	}
	return errs
}

// Format resolves id in the first bundle that has it. Resolver errors are
// wrapped as LocalizationError{Kind: Bundle}. The error result is a
// *NotFoundError when no bundle has the message and a MissingValue
// *LocalizationError when the winning message has only attributes.
func (c *Chain) Format(ctx context.Context, id string, args value.Args) (string, []error, error) {
	b := c.find(ctx, id)
	if b == nil {
		return "", nil, &NotFoundError{ID: id, Locales: c.Locales()}
	}
	out, errs, err := b.Format(id, args)
	if errors.Is(err, bundle.ErrNoValue) {
		return "", nil, &LocalizationError{Kind: MissingValue, ID: id, Locale: b.Locale()}
	}
	if err != nil {
		return "", nil, err
	}
	return out, wrap(id, b.Locale(), errs), nil
}

// FormatValues formats a batch of message values. A missing entry yields an
// empty string. Every locale skipped on the way to a message adds a
// MissingMessage error for that locale; a message found nowhere adds one
// more without a locale.
func (c *Chain) FormatValues(ctx context.Context, keys []Key) ([]string, []error) {
	out := make([]string, len(keys))
	var errs []error
	for i, k := range keys {
		b, missed := c.lookup(ctx, k.ID)
		errs = missing(errs, k.ID, missed, b != nil)
		if b == nil {
			continue
		}
		s, ferrs, err := b.Format(k.ID, k.Args)
		if err != nil {
			errs = append(errs, &LocalizationError{Kind: MissingValue, ID: k.ID, Locale: b.Locale(), Err: err})
			continue
		}
		out[i] = s
		errs = append(errs, wrap(k.ID, b.Locale(), ferrs)...)
	}
	return out, errs
}

// FormatMessages formats values and attributes. Missing messages are nil;
// misses are recorded as in FormatValues.
func (c *Chain) FormatMessages(ctx context.Context, keys []Key) ([]*bundle.FormattedMessage, []error) {
	out := make([]*bundle.FormattedMessage, len(keys))
	var errs []error
	for i, k := range keys {
		b, missed := c.lookup(ctx, k.ID)
		errs = missing(errs, k.ID, missed, b != nil)
		if b == nil {
			continue
		}
		fm, ferrs, err := b.FormatMessage(k.ID, k.Args)
		if err != nil {
			errs = append(errs, &LocalizationError{Kind: MissingMessage, ID: k.ID, Locale: b.Locale(), Err: err})
			continue
		}
		out[i] = fm
		errs = append(errs, wrap(k.ID, b.Locale(), ferrs)...)
	}
	return out, errs
}

func wrap(id string, locale language.Tag, errs []error) []error {
	if len(errs) == 0 {
		return nil
	}
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = &LocalizationError{Kind: Bundle, ID: id, Locale: locale, Err: err}
	}
	return out
}
