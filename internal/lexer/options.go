package lexer

import (
	"fluentkit/internal/diag"
	"fluentkit/internal/source"
	"fluentkit/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

func problemCode(p token.Problem) diag.Code {
	switch p {
	case token.ProblemUnexpectedChar:
		return diag.LexUnknownChar
	case token.ProblemUnbalancedBrace:
		return diag.LexUnbalancedBrace
	case token.ProblemUnknownEscape:
		return diag.LexUnknownEscape
	case token.ProblemInvalidUnicodeEscape:
		return diag.LexInvalidUnicodeEscape
	case token.ProblemUnterminatedString:
		return diag.LexUnterminatedString
	case token.ProblemMissingQuote:
		return diag.LexMissingQuote
	case token.ProblemExpectedDigit:
		return diag.LexBadNumber
	case token.ProblemCommentSpace:
		return diag.LexCommentSpace
	}
	return diag.UnknownCode
}
