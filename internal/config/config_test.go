package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/text/language"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !slices.Equal(cfg.Locales, []language.Tag{language.AmericanEnglish}) {
		t.Fatalf("locales = %v", cfg.Locales)
	}
	if cfg.MaxDiagnostics != 100 || cfg.Color != "auto" || cfg.TraceLevel != "off" || !cfg.Isolating {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheDir != "" || cfg.NoCache {
		t.Fatalf("cache should be default: %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"FLUENTKIT_LOCALES":         "fr,de-AT",
		"FLUENTKIT_MAX_DIAGNOSTICS": "7",
		"FLUENTKIT_COLOR":           "off",
		"FLUENTKIT_ISOLATING":       "false",
		"FLUENTKIT_TRACE":           "debug",
		"FLUENTKIT_PSEUDO":          "accented",
		"MAX_DIAGNOSTICS":           "1",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []language.Tag{language.French, language.MustParse("de-AT")}
	if !slices.Equal(cfg.Locales, want) {
		t.Fatalf("locales = %v, want %v", cfg.Locales, want)
	}
	if cfg.MaxDiagnostics != 7 {
		t.Fatalf("max diagnostics = %d", cfg.MaxDiagnostics)
	}
	if cfg.Color != "off" || cfg.Isolating || cfg.TraceLevel != "debug" || cfg.Pseudo != "accented" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []map[string]string{
		{"FLUENTKIT_COLOR": "sometimes"},
		{"FLUENTKIT_MAX_DIAGNOSTICS": "-1"},
		{"FLUENTKIT_MAX_DIAGNOSTICS": "many"},
		{"FLUENTKIT_TRACE": "loud"},
		{"FLUENTKIT_LOCALES": "en,!!"},
	}
	for _, vars := range tests {
		if _, err := Parse(vars); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", vars)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "FLUENTKIT_COLOR=on\nFLUENTKIT_CACHE_DIR=/tmp/fk\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FLUENTKIT_CACHE_DIR", "/var/cache/fk")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Color != "on" {
		t.Fatalf("color = %q, want value from .env", cfg.Color)
	}
	if cfg.CacheDir != "/var/cache/fk" {
		t.Fatalf("cache dir = %q, environment should win", cfg.CacheDir)
	}
}

func TestLoadMissingDotEnv(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
