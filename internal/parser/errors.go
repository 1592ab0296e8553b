package parser

import (
	"fmt"

	"fluentkit/internal/diag"
	"fluentkit/internal/source"
)

// ErrorKind: вид синтаксической ошибки.
type ErrorKind uint8

const (
	Generic ErrorKind = iota
	ExpectedEntry
	ExpectedToken
	ExpectedCharRange
	ExpectedMessageField
	ExpectedTermField
	ForbiddenWhitespace
	ForbiddenCallee
	ForbiddenKey
	MissingDefaultVariant
	MissingVariants
	MissingValue
	MissingVariantKey
	MissingLiteral
	MultipleDefaultVariants
	MessageReferenceAsSelector
	TermReferenceAsSelector
	MessageAttributeAsSelector
	TermAttributeAsPlaceable
	UnterminatedStringExpression
	PositionalArgumentFollowsNamed
	DuplicatedNamedArgument
	ForbiddenVariantAccessor
	UnknownEscapeSequence
	InvalidUnicodeEscapeSequence
	UnbalancedClosingBrace
	ExpectedInlineExpression
	ExpectedSimpleExpressionAsSelector
)

var kindNames = [...]string{
	Generic:                            "Generic",
	ExpectedEntry:                      "ExpectedEntry",
	ExpectedToken:                      "ExpectedToken",
	ExpectedCharRange:                  "ExpectedCharRange",
	ExpectedMessageField:               "ExpectedMessageField",
	ExpectedTermField:                  "ExpectedTermField",
	ForbiddenWhitespace:                "ForbiddenWhitespace",
	ForbiddenCallee:                    "ForbiddenCallee",
	ForbiddenKey:                       "ForbiddenKey",
	MissingDefaultVariant:              "MissingDefaultVariant",
	MissingVariants:                    "MissingVariants",
	MissingValue:                       "MissingValue",
	MissingVariantKey:                  "MissingVariantKey",
	MissingLiteral:                     "MissingLiteral",
	MultipleDefaultVariants:            "MultipleDefaultVariants",
	MessageReferenceAsSelector:         "MessageReferenceAsSelector",
	TermReferenceAsSelector:            "TermReferenceAsSelector",
	MessageAttributeAsSelector:         "MessageAttributeAsSelector",
	TermAttributeAsPlaceable:           "TermAttributeAsPlaceable",
	UnterminatedStringExpression:       "UnterminatedStringExpression",
	PositionalArgumentFollowsNamed:     "PositionalArgumentFollowsNamed",
	DuplicatedNamedArgument:            "DuplicatedNamedArgument",
	ForbiddenVariantAccessor:           "ForbiddenVariantAccessor",
	UnknownEscapeSequence:              "UnknownEscapeSequence",
	InvalidUnicodeEscapeSequence:       "InvalidUnicodeEscapeSequence",
	UnbalancedClosingBrace:             "UnbalancedClosingBrace",
	ExpectedInlineExpression:           "ExpectedInlineExpression",
	ExpectedSimpleExpressionAsSelector: "ExpectedSimpleExpressionAsSelector",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Code maps the kind to its SYN diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case ExpectedEntry:
		return diag.SynExpectedEntry
	case ExpectedToken:
		return diag.SynExpectedToken
	case ExpectedCharRange:
		return diag.SynExpectedCharRange
	case ExpectedMessageField:
		return diag.SynExpectedMessageField
	case ExpectedTermField:
		return diag.SynExpectedTermField
	case ForbiddenWhitespace:
		return diag.SynForbiddenWhitespace
	case ForbiddenCallee:
		return diag.SynForbiddenCallee
	case ForbiddenKey:
		return diag.SynForbiddenKey
	case MissingDefaultVariant:
		return diag.SynMissingDefaultVariant
	case MissingVariants:
		return diag.SynMissingVariants
	case MissingValue:
		return diag.SynMissingValue
	case MissingVariantKey:
		return diag.SynMissingVariantKey
	case MissingLiteral:
		return diag.SynMissingLiteral
	case MultipleDefaultVariants:
		return diag.SynMultipleDefaultVariants
	case MessageReferenceAsSelector:
		return diag.SynMessageReferenceAsSelector
	case TermReferenceAsSelector:
		return diag.SynTermReferenceAsSelector
	case MessageAttributeAsSelector:
		return diag.SynMessageAttributeAsSelector
	case TermAttributeAsPlaceable:
		return diag.SynTermAttributeAsPlaceable
	case UnterminatedStringExpression:
		return diag.SynUnterminatedString
	case PositionalArgumentFollowsNamed:
		return diag.SynPositionalFollowsNamed
	case DuplicatedNamedArgument:
		return diag.SynDuplicatedNamedArgument
	case ForbiddenVariantAccessor:
		return diag.SynForbiddenVariantAccessor
	case UnknownEscapeSequence:
		return diag.SynUnknownEscape
	case InvalidUnicodeEscapeSequence:
		return diag.SynInvalidUnicodeEscape
	case UnbalancedClosingBrace:
		return diag.SynUnbalancedClosingBrace
	case ExpectedInlineExpression:
		return diag.SynExpectedInlineExpression
	case ExpectedSimpleExpressionAsSelector:
		return diag.SynExpectedSimpleSelector
	}
	return diag.SynGeneric
}

// Error is a recoverable syntax error. Pos is the failure point; Slice is the
// extent of the Junk entry the error produced.
type Error struct {
	Kind     ErrorKind
	Arg      string // символ, диапазон, id или escape-последовательность
	Pos      source.Span
	Slice    source.Span
	HasSlice bool

	resume uint32 // откуда искать начало следующей записи
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExpectedEntry:
		return "Expected an entry"
	case ExpectedToken:
		return fmt.Sprintf("Expected a token starting with %q", e.Arg)
	case ExpectedCharRange:
		return fmt.Sprintf("Expected one of %q", e.Arg)
	case ExpectedMessageField:
		return fmt.Sprintf("Expected a message field for %q", e.Arg)
	case ExpectedTermField:
		return fmt.Sprintf("Expected a term field for %q", e.Arg)
	case ForbiddenWhitespace:
		return "Whitespace is not allowed here"
	case ForbiddenCallee:
		return "Callee is not allowed here"
	case ForbiddenKey:
		return "Key is not allowed here"
	case MissingDefaultVariant:
		return "The select expression must have a default variant"
	case MissingVariants:
		return "The select expression must have one or more variants"
	case MissingValue:
		return "Expected a value"
	case MissingVariantKey:
		return "Expected a variant key"
	case MissingLiteral:
		return "Expected a literal"
	case MultipleDefaultVariants:
		return "A select expression can only have one default variant"
	case MessageReferenceAsSelector:
		return "Message references can't be used as a selector"
	case TermReferenceAsSelector:
		return "Term references can't be used as a selector"
	case MessageAttributeAsSelector:
		return "Message attributes can't be used as a selector"
	case TermAttributeAsPlaceable:
		return "Term attributes can't be used as a placeable"
	case UnterminatedStringExpression:
		return "Unterminated string expression"
	case PositionalArgumentFollowsNamed:
		return "Positional arguments must come before named arguments"
	case DuplicatedNamedArgument:
		return fmt.Sprintf("The %q argument appears twice", e.Arg)
	case ForbiddenVariantAccessor:
		return "Forbidden variant accessor"
	case UnknownEscapeSequence:
		return fmt.Sprintf("Unknown escape sequence, %q", e.Arg)
	case InvalidUnicodeEscapeSequence:
		return fmt.Sprintf("Invalid unicode escape sequence, %q", e.Arg)
	case UnbalancedClosingBrace:
		return "Unbalanced closing brace"
	case ExpectedInlineExpression:
		return "Expected an inline expression"
	case ExpectedSimpleExpressionAsSelector:
		return "Expected a simple expression as selector"
	}
	return "An error occurred"
}
