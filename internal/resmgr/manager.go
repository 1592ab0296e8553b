// Package resmgr loads FTL resources described by an l10n.toml manifest and
// assembles them into bundles.
package resmgr

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"fluentkit/internal/ast"
	"fluentkit/internal/bundle"
	"fluentkit/internal/diag"
	"fluentkit/internal/parser"
	"fluentkit/internal/source"
	"fluentkit/internal/trace"
)

// Loaded is one parsed resource file.
type Loaded struct {
	File     *source.File
	Resource *ast.Resource
	Errors   []*parser.Error
	Cached   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDiskCache enables the msgpack resource cache.
func WithDiskCache(c *DiskCache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithBundleOptions adds options to every bundle built by Bundles.
func WithBundleOptions(opts ...bundle.Option) Option {
	return func(m *Manager) { m.bundleOpts = append(m.bundleOpts, opts...) }
}

// WithReporter reports syntax errors of loaded files. Spans refer to the
// manager's FileSet. Calls to r are serialized.
func WithReporter(r diag.Reporter) Option {
	return func(m *Manager) { m.reporter = &lockedReporter{r: r} }
}

// lockedReporter serializes reports coming from parallel loads.
type lockedReporter struct {
	mu sync.Mutex
	r  diag.Reporter
}

func (lr *lockedReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.r.Report(code, sev, primary, msg, notes, fixes)
}

// Manager caches parsed resources by full path. Safe for concurrent use.
type Manager struct {
	manifest   *Manifest
	cache      *DiskCache
	bundleOpts []bundle.Option
	reporter   diag.Reporter

	fsMu sync.Mutex
	fs   *source.FileSet

	mu        sync.Mutex
	resources map[string]*Loaded
}

func New(m *Manifest, opts ...Option) *Manager {
	mgr := &Manager{
		manifest:  m,
		fs:        source.NewFileSetWithBase(m.Dir),
		resources: make(map[string]*Loaded),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

func (m *Manager) Manifest() *Manifest { return m.manifest }

// FileSet holds every file loaded so far. Do not use it while loads are
// running.
func (m *Manager) FileSet() *source.FileSet { return m.fs }

// readFile adds full to the shared FileSet once. FileSet itself is not
// thread-safe, so loads take turns here; parsing runs outside the lock.
func (m *Manager) readFile(full string) (*source.File, error) {
	m.fsMu.Lock()
	defer m.fsMu.Unlock()
	if id, ok := m.fs.GetLatest(full); ok {
		return m.fs.Get(id), nil
	}
	id, err := m.fs.Load(full)
	if err != nil {
		return nil, err
	}
	return m.fs.Get(id), nil
}

// Resource loads the resource template path for locale.
func (m *Manager) Resource(ctx context.Context, locale language.Tag, path string) (*ast.Resource, []*parser.Error, error) {
	l, err := m.load(ctx, m.manifest.ResourcePath(locale, path))
	if err != nil {
		return nil, nil, err
	}
	return l.Resource, l.Errors, nil
}

func (m *Manager) load(ctx context.Context, full string) (*Loaded, error) {
	m.mu.Lock()
	if l, ok := m.resources[full]; ok {
		m.mu.Unlock()
		return l, nil
	}
	m.mu.Unlock()

	span, ctx := trace.StartSpan(ctx, trace.ScopeResource, "resmgr.load")
	span.WithExtra("path", full)
	defer span.End("")

	file, err := m.readFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", full, err)
	}
	l := &Loaded{File: file}

	res, hit, err := m.cache.Get(file.Hash)
	if err != nil {
		// битый кэш не мешает загрузке
		hit = false
	}
	trace.Point(trace.FromContext(ctx), trace.ScopeResource, "resmgr.cache", map[string]string{
		"path": full,
		"hit":  strconv.FormatBool(hit),
	})
	if hit {
		l.Resource, l.Cached = res, true
	} else {
		opts := parser.Options{Reporter: m.reporter}
		l.Resource, l.Errors = parser.ParseFile(ctx, file, opts)
		if len(l.Errors) == 0 {
			if err := m.cache.Put(file.Hash, full, l.Resource); err != nil {
				trace.Point(trace.FromContext(ctx), trace.ScopeResource, "resmgr.cache.error", map[string]string{
					"path":  full,
					"error": err.Error(),
				})
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.resources[full]; ok {
		return prev, nil
	}
	m.resources[full] = l
	return l, nil
}

// Bundles negotiates requested against the manifest and returns one bundle
// per resulting locale, in fallback order. Files are loaded in parallel.
func (m *Manager) Bundles(ctx context.Context, requested []language.Tag) ([]*bundle.Bundle, error) {
	locales := m.manifest.Negotiate(requested)
	paths := m.manifest.Paths

	loaded := make([][]*Loaded, len(locales))
	for i := range loaded {
		loaded[i] = make([]*Loaded, len(paths))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for li, locale := range locales {
		for pi, p := range paths {
			full := m.manifest.ResourcePath(locale, p)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				l, err := m.load(gctx, full)
				if err != nil {
					return err
				}
				loaded[li][pi] = l
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundles := make([]*bundle.Bundle, 0, len(locales))
	for li, locale := range locales {
		opts := []bundle.Option{
			bundle.WithIsolation(m.manifest.Isolating),
			bundle.WithFormatter(bundle.IntlFormatter),
		}
		if fn := m.manifest.Pseudo.Func(); fn != nil {
			opts = append(opts, bundle.WithTransform(fn))
		}
		opts = append(opts, m.bundleOpts...)
		b := bundle.New([]language.Tag{locale}, opts...)
		if err := b.AddBuiltins(); err != nil {
			return nil, err
		}
		for _, l := range loaded[li] {
			b.AddResource(l.Resource)
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}
