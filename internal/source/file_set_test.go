package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.ftl", []byte("hello = Hello"), 0)
	id2 := fs.Add("main.ftl", []byte("hello = Bonjour"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids: %d, %d", id1, id2)
	}

	latest, ok := fs.GetLatest("main.ftl")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "hello = Hello" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("inline.ftl", []byte("\xEF\xBB\xBFa = 1\r\nb = 2\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a = 1\nb = 2\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if f.Flags != want {
		t.Errorf("flags = %b, want %b", f.Flags, want)
	}
	if len(f.LineIdx) != 2 || f.LineIdx[0] != 5 || f.LineIdx[1] != 11 {
		t.Errorf("LineIdx = %v", f.LineIdx)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.ftl", []byte("one\ntwo\n\nfour"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{1, 4}}, // сам '\n'
		{4, LineCol{2, 1}},
		{8, LineCol{3, 1}},
		{9, LineCol{4, 1}},
		{12, LineCol{4, 4}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.ftl", []byte("first\nsecond\n")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: 1, Start: 4, End: 8}
	if sp.String() != "1:4-8" {
		t.Errorf("String = %q", sp.String())
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.ftl", []byte("key = value")))
	if got := f.Text(Span{Start: 6, End: 11}); got != "value" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 6, End: 99}); got != "value" {
		t.Errorf("Text should clamp, got %q", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	target := filepath.Join(otherDir, "en.ftl")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	inside, err := RelativePath(filepath.Join(baseDir, "fr", "main.ftl"), baseDir)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if inside != "fr/main.ftl" {
		t.Errorf("inside = %q", inside)
	}
}
