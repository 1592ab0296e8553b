package serializer

import "strings"

const indentUnit = "    "

// textWriter indents every non-empty line by the current level.
type textWriter struct {
	buf       strings.Builder
	level     int
	lineStart bool
}

func newTextWriter() *textWriter {
	return &textWriter{lineStart: true}
}

func (w *textWriter) indent() { w.level++ }

func (w *textWriter) dedent() {
	if w.level > 0 {
		w.level--
	}
}

func (w *textWriter) newline() {
	w.buf.WriteByte('\n')
	w.lineStart = true
}

func (w *textWriter) writeIndent(shift int) {
	n := w.level*len(indentUnit) - shift
	if n > 0 {
		w.buf.WriteString(strings.Repeat(" ", n))
	}
	w.lineStart = false
}

// write emits s; embedded newlines start new indented lines.
func (w *textWriter) write(s string) {
	for s != "" {
		line, rest, found := strings.Cut(s, "\n")
		if line != "" {
			if w.lineStart {
				w.writeIndent(0)
			}
			w.buf.WriteString(line)
		}
		if !found {
			return
		}
		w.newline()
		s = rest
	}
}

// writeOutdented пишет s, сдвинув его на shift колонок левее отступа.
func (w *textWriter) writeOutdented(s string, shift int) {
	if w.lineStart {
		w.writeIndent(shift)
	}
	w.buf.WriteString(s)
}

// blankLine reports whether the output already ends with an empty line.
func (w *textWriter) blankLine() bool {
	return strings.HasSuffix(w.buf.String(), "\n\n")
}

func (w *textWriter) String() string { return w.buf.String() }
