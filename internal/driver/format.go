package driver

import (
	"bytes"
	"context"

	"fluentkit/internal/serializer"
)

// FormatResult is a parse plus its canonical FTL text.
type FormatResult struct {
	*ParseResult
	Formatted []byte
	// Changed is false when the file already is in canonical form.
	Changed bool
}

// Format parses path and serializes it back. Junk survives only when
// withJunk is set.
func Format(ctx context.Context, path string, withJunk bool, maxDiagnostics int) (*FormatResult, error) {
	pr, err := Parse(ctx, path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	out := []byte(serializer.Serialize(pr.Resource, serializer.Options{WithJunk: withJunk}))
	return &FormatResult{
		ParseResult: pr,
		Formatted:   out,
		Changed:     !bytes.Equal(out, pr.File.Content),
	}, nil
}
