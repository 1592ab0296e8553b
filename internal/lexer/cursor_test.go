package lexer

import (
	"testing"

	"fluentkit/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ftl", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for i, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Peek(); got != want {
			t.Errorf("peek %d: got %q, want %q", i, got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Errorf("bump %d: got %q, want %q", i, got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF after reading all bytes")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Peek/Bump past EOF must return 0")
	}
}

func TestPeekAt(t *testing.T) {
	cursor := NewCursor(createFile("->"))
	if cursor.PeekAt(0) != '-' || cursor.PeekAt(1) != '>' {
		t.Errorf("PeekAt mismatch")
	}
	if cursor.PeekAt(2) != 0 {
		t.Errorf("PeekAt past EOF must return 0")
	}
}

func TestCRLFNormalizedBeforeCursor(t *testing.T) {
	cursor := NewCursor(createFile("a\r\nb"))
	cursor.Bump()
	if !cursor.Eat('\n') {
		t.Fatalf("CRLF should be seen as a single LF")
	}
	if cursor.Peek() != 'b' {
		t.Errorf("expected 'b', got %q", cursor.Peek())
	}
}

func TestSkipSpaces(t *testing.T) {
	cursor := NewCursor(createFile("   \tx"))
	if n := cursor.SkipSpaces(); n != 3 {
		t.Errorf("SkipSpaces = %d, want 3 (tab is not a space)", n)
	}
	if cursor.Peek() != '\t' {
		t.Errorf("expected tab, got %q", cursor.Peek())
	}
}

func TestMarkReset(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Errorf("span = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 || !cursor.AtLineStart() {
		t.Errorf("Reset did not return to start")
	}
}
