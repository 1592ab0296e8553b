package resmgr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"fluentkit/internal/pseudo"
)

// ManifestName: имя файла манифеста ресурсов.
const ManifestName = "l10n.toml"

// LocalePlaceholder is replaced by the locale tag in resource path templates.
const LocalePlaceholder = "{locale}"

var (
	// ErrLocalesMissing indicates that [locales].available is missing or empty.
	ErrLocalesMissing = errors.New("missing [locales].available")
	// ErrDefaultMissing indicates that [locales].default is missing.
	ErrDefaultMissing = errors.New("missing [locales].default")
	// ErrPathsMissing indicates that [resources].paths is missing or empty.
	ErrPathsMissing = errors.New("missing [resources].paths")
)

// Manifest describes a resource set: which locales exist and where their
// FTL files live.
type Manifest struct {
	Path      string
	Dir       string
	Available []language.Tag
	Default   language.Tag
	Paths     []string
	Isolating bool
	Pseudo    pseudo.Strategy
}

type manifestFile struct {
	Locales struct {
		Available []string `toml:"available"`
		Default   string   `toml:"default"`
	} `toml:"locales"`
	Resources struct {
		Paths []string `toml:"paths"`
	} `toml:"resources"`
	Bundle struct {
		Isolating bool   `toml:"isolating"`
		Pseudo    string `toml:"pseudo"`
	} `toml:"bundle"`
}

// FindManifest walks up from startDir to locate l10n.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates a manifest.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("locales", "available") || len(cfg.Locales.Available) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrLocalesMissing)
	}
	def := strings.TrimSpace(cfg.Locales.Default)
	if !meta.IsDefined("locales", "default") || def == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrDefaultMissing)
	}
	if !meta.IsDefined("resources", "paths") || len(cfg.Resources.Paths) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrPathsMissing)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	m := &Manifest{
		Path:      abs,
		Dir:       filepath.Dir(abs),
		Isolating: true,
	}
	for _, s := range cfg.Locales.Available {
		tag, err := language.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid locale %q: %w", path, s, err)
		}
		m.Available = append(m.Available, tag)
	}
	if m.Default, err = language.Parse(def); err != nil {
		return nil, fmt.Errorf("%s: invalid default locale %q: %w", path, def, err)
	}
	if !slices.Contains(m.Available, m.Default) {
		return nil, fmt.Errorf("%s: default locale %q is not in [locales].available", path, def)
	}
	for _, p := range cfg.Resources.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%s: empty resource path", path)
		}
		if filepath.IsAbs(p) {
			return nil, fmt.Errorf("%s: invalid resource path %q: must be relative", path, p)
		}
		m.Paths = append(m.Paths, p)
	}
	if meta.IsDefined("bundle", "isolating") {
		m.Isolating = cfg.Bundle.Isolating
	}
	strategy, ok := pseudo.ParseStrategy(cfg.Bundle.Pseudo)
	if !ok {
		return nil, fmt.Errorf("%s: unknown pseudo strategy %q", path, cfg.Bundle.Pseudo)
	}
	m.Pseudo = strategy
	return m, nil
}

// ResourcePath expands a path template for locale, relative to the manifest.
func (m *Manifest) ResourcePath(locale language.Tag, tmpl string) string {
	rel := strings.ReplaceAll(tmpl, LocalePlaceholder, locale.String())
	return filepath.Join(m.Dir, filepath.FromSlash(rel))
}

// Negotiate orders the available locales by the requested ones. Unmatched
// requests are dropped; the default locale always closes the list.
func (m *Manifest) Negotiate(requested []language.Tag) []language.Tag {
	matcher := language.NewMatcher(m.Available)
	var out []language.Tag
	for _, tag := range requested {
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			continue
		}
		if got := m.Available[idx]; !slices.Contains(out, got) {
			out = append(out, got)
		}
	}
	if !slices.Contains(out, m.Default) {
		out = append(out, m.Default)
	}
	return out
}
