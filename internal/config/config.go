// Package config loads fluentkit settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"fluentkit/internal/trace"
)

// Prefix is prepended to every variable name.
const Prefix = "FLUENTKIT_"

// DotEnv is the file read by Load when no other path is given.
const DotEnv = ".env"

// Config: настройки CLI, которые можно задать через окружение.
// Флаги командной строки имеют приоритет над этими значениями.
type Config struct {
	Locales        []language.Tag `env:"LOCALES" envDefault:"en-US" envSeparator:","`
	MaxDiagnostics int            `env:"MAX_DIAGNOSTICS" envDefault:"100"`
	Color          string         `env:"COLOR" envDefault:"auto"`
	CacheDir       string         `env:"CACHE_DIR"`
	NoCache        bool           `env:"NO_CACHE"`
	TraceLevel     string         `env:"TRACE" envDefault:"off"`
	TraceOutput    string         `env:"TRACE_OUTPUT"`
	Isolating      bool           `env:"ISOLATING" envDefault:"true"`
	Pseudo         string         `env:"PSEUDO"`
}

// Load reads dotenv (DotEnv when empty; a missing file is fine), overlays
// the process environment and parses the result.
func Load(dotenv string) (Config, error) {
	vars := make(map[string]string)
	if dotenv == "" {
		dotenv = DotEnv
	}
	fileVars, err := godotenv.Read(dotenv)
	switch {
	case err == nil:
		for k, v := range fileVars {
			vars[k] = v
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", dotenv, err)
	}
	// окружение процесса перекрывает .env
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return Parse(vars)
}

// Parse builds a Config from vars only.
func Parse(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix, Environment: vars}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%sCOLOR: invalid value %q (expected: auto|on|off)", Prefix, c.Color)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("%sMAX_DIAGNOSTICS: must not be negative", Prefix)
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("%sLOCALES: at least one locale is required", Prefix)
	}
	if _, err := trace.ParseLevel(c.TraceLevel); err != nil {
		return fmt.Errorf("%sTRACE: %w", Prefix, err)
	}
	return nil
}
