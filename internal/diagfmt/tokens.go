package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Flags   []string    `json:"flags,omitempty"`
	Indent  uint32      `json:"indent,omitempty"`
	Problem string      `json:"problem,omitempty"`
}

var flagNames = []struct {
	flag token.Flags
	name string
}{
	{token.FlagLineStart, "line-start"},
	{token.FlagInitial, "initial"},
	{token.FlagBlank, "blank"},
	{token.FlagLineFeed, "line-feed"},
	{token.FlagSpaceBefore, "space-before"},
	{token.FlagNewlineBefore, "newline-before"},
}

func tokenFlags(tok token.Token) []string {
	var out []string
	for _, f := range flagNames {
		if tok.Has(f.flag) {
			out = append(out, f.name)
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-19s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if flags := tokenFlags(tok); len(flags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(flags, ", "))
		}
		if tok.Indent > 0 {
			fmt.Fprintf(&b, " indent=%d", tok.Indent)
		}
		if tok.Kind == token.Invalid {
			fmt.Fprintf(&b, " (%s)", tok.Problem)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   tok.Span,
			Flags:  tokenFlags(tok),
			Indent: tok.Indent,
		}
		if tok.Problem != token.ProblemNone {
			out.Problem = tok.Problem.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
