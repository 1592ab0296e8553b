package main

import (
	"fmt"
	"io"
	"os"

	"fluentkit/internal/diag"
	"fluentkit/internal/diagfmt"
	"fluentkit/internal/source"
)

// printDiagnostics пишет диагностики в stderr (pretty) или в out (json, short).
func printDiagnostics(out io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch format {
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "short":
		if text := diag.FormatShortDiagnostics(bag.Items(), fs, true); text != "" {
			_, err := fmt.Fprintln(out, text)
			return err
		}
		return nil
	case "pretty", "":
		if current.quiet && !bag.HasErrors() {
			return nil
		}
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(os.Stderr),
			Context:   1,
			ShowNotes: true,
			ShowFixes: true,
		})
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

// countSeverities возвращает число ошибок и предупреждений.
func countSeverities(bag *diag.Bag) (errs, warnings int) {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			warnings++
		}
	}
	return len(bag.Errors()), warnings
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
