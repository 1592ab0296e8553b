// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fluentkit/internal/ast"
	"fluentkit/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed resource:
// 1) the resource span starts at 0 and ends at the end of sf's content
// 2) every entry span is well-formed, points at sf and lies inside the resource
// 3) entries follow in source order without overlapping
func CheckSpanInvariants(res *ast.Resource, sf *source.File) error {
	if res == nil || sf == nil {
		return fmt.Errorf("nil resource or file")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if res.Span.Start != 0 || res.Span.End != lenContent {
		return fmt.Errorf("resource span %d..%d does not cover content of %d bytes", res.Span.Start, res.Span.End, lenContent)
	}
	if res.Span.File != sf.ID {
		return fmt.Errorf("resource span points to different file id: got=%d want=%d", res.Span.File, sf.ID)
	}

	var prevEnd uint32
	for i, e := range res.Body {
		sp := e.Pos()
		if sp.End < sp.Start {
			return fmt.Errorf("entry %d: inverted span %d..%d", i, sp.Start, sp.End)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("entry %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > res.Span.End {
			return fmt.Errorf("entry %d: span %d..%d is outside the resource", i, sp.Start, sp.End)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("entry %d: span %d..%d overlaps the previous entry ending at %d", i, sp.Start, sp.End, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}
