package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"

	"fluentkit/internal/bundle"
	"fluentkit/internal/diag"
	"fluentkit/internal/fallback"
	"fluentkit/internal/parser"
	"fluentkit/internal/pseudo"
	"fluentkit/internal/resmgr"
	"fluentkit/internal/source"
	"fluentkit/internal/value"
)

// ErrUnknownAttribute is returned by Localizer.Format for id.attr requests
// whose message lacks the attribute.
var ErrUnknownAttribute = errors.New("unknown attribute")

// LocalizeOptions selects the resources and bundle settings for Localize.
type LocalizeOptions struct {
	// Manifest is an l10n.toml path. When empty, Files are loaded into a
	// single bundle for Locales.
	Manifest       string
	Files          []string
	Locales        []language.Tag
	NoIsolating    bool
	Pseudo         pseudo.Strategy
	CacheDir       string
	NoCache        bool
	MaxDiagnostics int
}

// Localizer formats messages through a fallback chain.
type Localizer struct {
	Chain   *fallback.Chain
	FileSet *source.FileSet
	// Bag holds syntax diagnostics of the loaded resources.
	Bag *diag.Bag
}

// NewLocalizer loads resources and builds the chain.
func NewLocalizer(ctx context.Context, opts LocalizeOptions) (*Localizer, error) {
	var bundleOpts []bundle.Option
	if opts.NoIsolating {
		bundleOpts = append(bundleOpts, bundle.WithIsolation(false))
	}
	if fn := opts.Pseudo.Func(); fn != nil {
		bundleOpts = append(bundleOpts, bundle.WithTransform(fn))
	}
	bag := diag.NewBag(opts.MaxDiagnostics)

	if opts.Manifest != "" {
		m, err := resmgr.Load(opts.Manifest)
		if err != nil {
			return nil, err
		}
		mgrOpts := []resmgr.Option{
			resmgr.WithReporter(&diag.BagReporter{Bag: bag}),
			resmgr.WithBundleOptions(bundleOpts...),
		}
		if !opts.NoCache {
			// кэш необязателен: без него просто парсим заново
			if cache, err := resmgr.OpenDiskCache(opts.CacheDir); err == nil {
				mgrOpts = append(mgrOpts, resmgr.WithDiskCache(cache))
			}
		}
		mgr := resmgr.New(m, mgrOpts...)
		bundles, err := mgr.Bundles(ctx, opts.Locales)
		if err != nil {
			return nil, err
		}
		chain, err := fallback.New(bundles...)
		if err != nil {
			return nil, err
		}
		return &Localizer{Chain: chain, FileSet: mgr.FileSet(), Bag: bag}, nil
	}

	if len(opts.Files) == 0 {
		return nil, errors.New("no resources: pass FTL files or a manifest")
	}
	fs := source.NewFileSet()
	b := bundle.New(opts.Locales, append([]bundle.Option{bundle.WithFormatter(bundle.IntlFormatter)}, bundleOpts...)...)
	if err := b.AddBuiltins(); err != nil {
		return nil, err
	}
	for _, path := range opts.Files {
		id, err := fs.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		res, _ := parser.ParseFile(ctx, fs.Get(id), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
		b.AddResource(res)
	}
	chain, err := fallback.New(b)
	if err != nil {
		return nil, err
	}
	return &Localizer{Chain: chain, FileSet: fs, Bag: bag}, nil
}

// Format resolves "id" or "id.attr".
func (l *Localizer) Format(ctx context.Context, ref string, args value.Args) (string, []error, error) {
	id, attr, ok := strings.Cut(ref, ".")
	if !ok {
		return l.Chain.Format(ctx, id, args)
	}
	msgs, errs := l.Chain.FormatMessages(ctx, []fallback.Key{{ID: id, Args: args}})
	if msgs[0] == nil {
		return "", nil, &fallback.NotFoundError{ID: id, Locales: l.Chain.Locales()}
	}
	out, found := msgs[0].Attribute(attr)
	if !found {
		return "", errs, fmt.Errorf("%w: %s", ErrUnknownAttribute, ref)
	}
	return out, errs, nil
}

// Suggest returns up to limit message ids that fuzzily match id, best first.
func (l *Localizer) Suggest(id string, limit int) []string {
	return Suggest(id, l.Chain.MessageIDs(), limit)
}

func Suggest(id string, candidates []string, limit int) []string {
	matches := fuzzy.Find(id, candidates)
	out := make([]string, 0, max(min(limit, len(matches)), 0))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// ErrorDiagnostics converts formatting errors into diagnostics without a
// source location. Repeated errors (the same unknown variable used twice)
// are reported once.
func ErrorDiagnostics(errs []error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for _, err := range errs {
		code := diag.ResInfo
		var coded interface{ Code() diag.Code }
		if errors.As(err, &coded) {
			code = coded.Code()
		}
		r.Report(code, diag.SevWarning, source.Span{}, err.Error(), nil, nil)
	}
	return bag
}
