package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"fluentkit/internal/diag"
	"fluentkit/internal/source"
)

const sampleFTL = "hello = { $name\nbye = Bye\n"

func sampleBag(fs *source.FileSet) (*diag.Bag, source.FileID) {
	fileID := fs.AddVirtual("main.ftl", []byte(sampleFTL))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynExpectedToken,
		source.Span{File: fileID, Start: 8, End: 15}, "Expected token: }"))
	return bag, fileID
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := sampleBag(fs)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "main.ftl:1:9: ERROR SYN2002: Expected token: }\n" +
		" 1 | hello = { $name\n" +
		"   |         ^~~~~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ftl", []byte(sampleFTL))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.ResUnknownMessage,
		source.Span{File: fileID, Start: 22, End: 25}, "Unknown message: Bye"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 2})

	want := "main.ftl:2:7: WARNING RES3001: Unknown message: Bye\n" +
		" 1 | hello = { $name\n" +
		" 2 | bye = Bye\n" +
		"   |       ^~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.Add("/home/user/project/locales/en/main.ftl", []byte(sampleFTL), 0)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 15}, "Unterminated string literal"))

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/locales/en/main.ftl:1:9:"},
		{"relative", PathModeRelative, "locales/en/main.ftl:1:9:"},
		{"basename", PathModeBasename, "main.ftl:1:9:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.HasPrefix(output, tt.want) {
				t.Errorf("expected output to start with %q, got:\n%s", tt.want, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: Unterminated string literal") {
				t.Errorf("missing header, got:\n%s", output)
			}
		})
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ftl", []byte(sampleFTL))

	primary := source.Span{File: fileID, Start: 8, End: 15}
	d := diag.New(diag.SevError, diag.SynExpectedToken, primary, "Expected token: }")
	d = d.WithNote(source.Span{File: fileID, Start: 16, End: 19}, "next entry starts here")
	d = d.WithFix("close placeable", diag.FixEdit{
		Span:    source.Span{File: fileID, Start: 15, End: 15},
		NewText: " }",
	})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true, ShowPreview: true})
	output := buf.String()

	for _, want := range []string{
		"note: main.ftl:2:1: next entry starts here",
		"fix #1: close placeable",
		`edit main.ftl:1:16 apply=" }"`,
		"preview:",
		"- hello = { $name\n",
		"+ hello = { $name }\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "failed to load missing.ftl"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got, want := buf.String(), "ERROR IO5001: failed to load missing.ftl\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ftl", []byte(sampleFTL))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "bad"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 2})
	output := buf.String()
	if n := strings.Count(output, "WARNING LEX1001"); n != 2 {
		t.Fatalf("printed %d diagnostics, want 2:\n%s", n, output)
	}
	if !strings.HasSuffix(output, "... and 1 more\n") {
		t.Fatalf("missing overflow line:\n%s", output)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := sampleBag(fs)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
