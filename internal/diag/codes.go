package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                 Code = 1000
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexMissingQuote         Code = 1003
	LexBadNumber            Code = 1004
	LexUnbalancedBrace      Code = 1005
	LexUnknownEscape        Code = 1006
	LexInvalidUnicodeEscape Code = 1007
	LexCommentSpace         Code = 1008
	LexJunk                 Code = 1009

	// Синтаксические, один к одному с parser.ErrorKind
	SynInfo                       Code = 2000
	SynExpectedEntry              Code = 2001
	SynExpectedToken              Code = 2002
	SynExpectedCharRange          Code = 2003
	SynExpectedMessageField       Code = 2004
	SynExpectedTermField          Code = 2005
	SynForbiddenWhitespace        Code = 2006
	SynForbiddenCallee            Code = 2007
	SynForbiddenKey               Code = 2008
	SynMissingDefaultVariant      Code = 2009
	SynMissingVariants            Code = 2010
	SynMissingValue               Code = 2011
	SynMissingVariantKey          Code = 2012
	SynMissingLiteral             Code = 2013
	SynMultipleDefaultVariants    Code = 2014
	SynMessageReferenceAsSelector Code = 2015
	SynTermReferenceAsSelector    Code = 2016
	SynMessageAttributeAsSelector Code = 2017
	SynTermAttributeAsPlaceable   Code = 2018
	SynUnterminatedString         Code = 2019
	SynPositionalFollowsNamed     Code = 2020
	SynDuplicatedNamedArgument    Code = 2021
	SynForbiddenVariantAccessor   Code = 2022
	SynUnknownEscape              Code = 2023
	SynInvalidUnicodeEscape       Code = 2024
	SynUnbalancedClosingBrace     Code = 2025
	SynExpectedInlineExpression   Code = 2026
	SynExpectedSimpleSelector     Code = 2027
	SynGeneric                    Code = 2099

	// Разрешение сообщений
	ResInfo                Code = 3000
	ResUnknownMessage      Code = 3001
	ResUnknownTerm         Code = 3002
	ResUnknownAttribute    Code = 3003
	ResUnknownVariable     Code = 3004
	ResUnknownFunction     Code = 3005
	ResNoValue             Code = 3006
	ResCyclic              Code = 3007
	ResTooManyPlaceables   Code = 3008
	ResMissingDefault      Code = 3009
	ResArgument            Code = 3010
	ResValue               Code = 3011
	ResUnresolvedReference Code = 3012
	ResDuplicateEntry      Code = 3013
	ResOverride            Code = 3014

	// Локали и fallback
	LocInfo           Code = 4000
	LocMissingMessage Code = 4001
	LocMissingValue   Code = 4002
	LocNoBundles      Code = 4003
	LocNegotiation    Code = 4004

	// I/O
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOManifest      Code = 5002
	IOCache         Code = 5003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexInfo:                 "Lexical information",
		LexUnknownChar:          "Unexpected character",
		LexUnterminatedString:   "Unterminated string literal",
		LexMissingQuote:         "Missing closing quote",
		LexBadNumber:            "Malformed number literal",
		LexUnbalancedBrace:      "Unbalanced closing brace",
		LexUnknownEscape:        "Unknown escape sequence",
		LexInvalidUnicodeEscape: "Invalid unicode escape sequence",
		LexCommentSpace:         "Comment marker must be followed by a space",
		LexJunk:                 "Line does not start an entry",

		SynInfo:                       "Syntax information",
		SynExpectedEntry:              "Expected an entry",
		SynExpectedToken:              "Expected token",
		SynExpectedCharRange:          "Expected character range",
		SynExpectedMessageField:       "Expected a message field",
		SynExpectedTermField:          "Expected a term field",
		SynForbiddenWhitespace:        "Whitespace is not allowed here",
		SynForbiddenCallee:            "Callee is not allowed here",
		SynForbiddenKey:               "Key is not allowed here",
		SynMissingDefaultVariant:      "Missing default variant",
		SynMissingVariants:            "Missing variants",
		SynMissingValue:               "Missing value",
		SynMissingVariantKey:          "Missing variant key",
		SynMissingLiteral:             "Missing literal",
		SynMultipleDefaultVariants:    "Multiple default variants",
		SynMessageReferenceAsSelector: "Message reference used as selector",
		SynTermReferenceAsSelector:    "Term reference used as selector",
		SynMessageAttributeAsSelector: "Message attribute used as selector",
		SynTermAttributeAsPlaceable:   "Term attribute used as placeable",
		SynUnterminatedString:         "Unterminated string expression",
		SynPositionalFollowsNamed:     "Positional argument after named",
		SynDuplicatedNamedArgument:    "Duplicated named argument",
		SynForbiddenVariantAccessor:   "Forbidden variant accessor",
		SynUnknownEscape:              "Unknown escape sequence",
		SynInvalidUnicodeEscape:       "Invalid unicode escape sequence",
		SynUnbalancedClosingBrace:     "Unbalanced closing brace",
		SynExpectedInlineExpression:   "Expected an inline expression",
		SynExpectedSimpleSelector:     "Expected a simple expression as selector",
		SynGeneric:                    "Syntax error",

		ResInfo:                "Resolver information",
		ResUnknownMessage:      "Unknown message",
		ResUnknownTerm:         "Unknown term",
		ResUnknownAttribute:    "Unknown attribute",
		ResUnknownVariable:     "Unknown variable",
		ResUnknownFunction:     "Unknown function",
		ResNoValue:             "Message has no value",
		ResCyclic:              "Cyclic reference",
		ResTooManyPlaceables:   "Too many placeables",
		ResMissingDefault:      "No default variant",
		ResArgument:            "Invalid function argument",
		ResValue:               "Invalid value",
		ResUnresolvedReference: "Unresolved reference",
		ResDuplicateEntry:      "Duplicate entry",
		ResOverride:            "Entry overrides an earlier definition",

		LocInfo:           "Localization information",
		LocMissingMessage: "Missing message",
		LocMissingValue:   "Missing message value",
		LocNoBundles:      "No bundles available",
		LocNegotiation:    "Locale negotiation failed",

		IOInfo:          "I/O information",
		IOLoadFileError: "Failed to load file",
		IOManifest:      "Invalid manifest",
		IOCache:         "Cache failure",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOC%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
