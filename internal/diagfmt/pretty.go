package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fluentkit/internal/diag"
	"fluentkit/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		d := &items[i]
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		fmt.Fprintf(w, "\n... and %d more\n", hidden)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := fmt.Sprintf("%s %s: %s",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if !hasLocation(d.Primary, d.Code, fs) {
		fmt.Fprintln(w, header)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", pal.path.Sprint(location(d.Primary, fs, opts.PathMode)), header)
	writeSnippet(w, d.Primary, fs, opts, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			if hasLocation(note.Span, d.Code, fs) {
				fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(note.Span, fs, opts.PathMode), note.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
			}
		}
	}
	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprintf("fix #%d:", i+1), fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(w, "      edit %s apply=%q\n", location(edit.Span, fs, opts.PathMode), edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "      preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "        - %s\n", line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "        + %s\n", line)
				}
			}
		}
	}
}

// hasLocation: I/O диагностики, спаны вне FileSet и пустые спаны
// разрешения (ошибки времени форматирования) печатаются без позиции.
func hasLocation(sp source.Span, code diag.Code, fs *source.FileSet) bool {
	switch {
	case fs == nil || code >= diag.IOInfo:
		return false
	case code >= diag.ResInfo && sp == source.Span{}:
		return false
	}
	return int(sp.File) < fs.Len()
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, sp.File, mode), start.Line, start.Col)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	return f.FormatPath("auto", "")
}

func writeSnippet(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8

	lines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by file size
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		lines--
	}
	first := start.Line - min(ctx, start.Line-1)
	last := max(min(start.Line+ctx, lines), start.Line)
	gutter := len(fmt.Sprint(last))
	pad := strings.Repeat(" ", gutter)

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		text = strings.TrimRight(text, "\n")
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutter, line), text)
		if line != start.Line {
			continue
		}

		raw := f.GetLine(line)
		from := min(int(start.Col-1), len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(raw))
		}
		indent := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:max(to, from)])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%s |", pad), strings.Repeat(" ", indent), pal.caret.Sprint(marker))
	}
}

// Табы в FTL встречаются только в тексте, считаем их за один столбец.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
