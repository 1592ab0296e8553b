package driver

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"fluentkit/internal/value"
)

// LoadArgs reads a YAML mapping of argument names to scalars. Numbers stay
// numbers; everything else is formatted as a string.
func LoadArgs(path string) (value.Args, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return value.Args{}, err
	}
	return ParseArgsYAML(data)
}

// ParseArgsYAML decodes arguments from YAML text.
func ParseArgsYAML(data []byte) (value.Args, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return value.Args{}, fmt.Errorf("invalid arguments file: %w", err)
	}
	var args value.Args
	for name, v := range raw {
		switch v.(type) {
		case map[string]any, []any:
			return value.Args{}, fmt.Errorf("argument %q: expected a scalar", name)
		}
		args.Set(name, value.From(v))
	}
	return args, nil
}

// ParseArg parses a name=value pair from the command line. Values that look
// like FTL number literals become numbers.
func ParseArg(args *value.Args, pair string) error {
	name, raw, ok := strings.Cut(pair, "=")
	if !ok || name == "" {
		return fmt.Errorf("invalid argument %q: expected name=value", pair)
	}
	if n, err := value.ParseNumber(raw); err == nil && isNumberLiteral(raw) {
		args.Set(name, n)
		return nil
	}
	args.Set(name, value.String(raw))
	return nil
}

// isNumberLiteral: -?[0-9]+(\.[0-9]+)?
func isNumberLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !allDigits(intPart) {
		return false
	}
	return !hasDot || allDigits(frac)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
