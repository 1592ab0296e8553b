package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"fluentkit/internal/diag"
	"fluentkit/internal/source"
)

// fixPreview holds the lines touched by one edit, before and after.
type fixPreview struct {
	before []string
	after  []string
}

func buildFixPreview(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, fmt.Errorf("nil FileSet")
	}
	if int(edit.Span.File) >= fs.Len() {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	file := fs.Get(edit.Span.File)

	startPos, endPos := fs.Resolve(edit.Span)
	endLine := max(endPos.Line, startPos.Line)

	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockStart := lineStart(file, startPos.Line, size)
	blockEnd := min(max(lineEndInclusive(file, endLine, size), blockStart), size)
	block := file.Content[blockStart:blockEnd]

	if edit.Span.Start < blockStart || edit.Span.End < edit.Span.Start || edit.Span.End > blockEnd {
		return fixPreview{}, fmt.Errorf("edit span %s out of range for preview block", edit.Span)
	}
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	after := make([]byte, 0, len(block)+len(edit.NewText))
	after = append(after, block[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, block[relEnd:]...)

	return fixPreview{
		before: previewLines(block),
		after:  previewLines(after),
	}, nil
}

// previewLines режет блок на строки без завершающего '\n'.
func previewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStart(f *source.File, line, size uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line - 2); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return size
}

func lineEndInclusive(f *source.File, line, size uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return size
}
