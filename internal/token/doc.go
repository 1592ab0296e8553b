// Package token defines lexical token kinds for FTL resources.
// Invariants:
//   - Token.Text is a slice of the normalized source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Text tokens are raw pattern slices; dedent and trimming happen in the parser,
//     which uses Indent and the role flags carried by each Text token.
//   - The lexer never fails: malformed input yields Invalid tokens carrying a
//     Problem, or Junk tokens covering whole lines up to the next entry start.
package token
