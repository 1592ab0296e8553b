package fallback

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"fluentkit/internal/bundle"
	"fluentkit/internal/diag"
)

// ErrorKind классифицирует LocalizationError.
type ErrorKind uint8

const (
	// Bundle wraps a resolver error of the bundle that won the lookup.
	Bundle ErrorKind = iota
	MissingMessage
	MissingValue
)

func (k ErrorKind) String() string {
	switch k {
	case Bundle:
		return "Bundle"
	case MissingMessage:
		return "MissingMessage"
	case MissingValue:
		return "MissingValue"
	}
	return "ErrorKind(?)"
}

// LocalizationError is one problem found while formatting through a chain.
// Locale is language.Und when the error is not tied to a bundle.
type LocalizationError struct {
	Kind   ErrorKind
	ID     string
	Locale language.Tag
	Err    error
}

func (e *LocalizationError) Error() string {
	switch e.Kind {
	case Bundle:
		return fmt.Sprintf("Bundle %s error: %v", e.ID, e.Err)
	case MissingMessage:
		if e.Locale != language.Und {
			return fmt.Sprintf("Missing message: %s (%s)", e.ID, e.Locale)
		}
		return "Missing message: " + e.ID
	case MissingValue:
		return "Missing value in message: " + e.ID
	}
	return e.Kind.String()
}

func (e *LocalizationError) Unwrap() error { return e.Err }

// Code returns the diagnostic code; bundle errors keep the resolver's code.
func (e *LocalizationError) Code() diag.Code {
	switch e.Kind {
	case MissingMessage:
		return diag.LocMissingMessage
	case MissingValue:
		return diag.LocMissingValue
	}
	if c, ok := e.Err.(interface{ Code() diag.Code }); ok {
		return c.Code()
	}
	return diag.ResUnresolvedReference
}

// NotFoundError is returned when no bundle of the chain has the message.
type NotFoundError struct {
	ID      string
	Locales []language.Tag
}

func (e *NotFoundError) Error() string {
	names := make([]string, len(e.Locales))
	for i, l := range e.Locales {
		names[i] = l.String()
	}
	return fmt.Sprintf("message %q not found in locales [%s]", e.ID, strings.Join(names, ", "))
}

// Unwrap lets errors.Is(err, bundle.ErrMessageNotFound) match.
func (e *NotFoundError) Unwrap() error { return bundle.ErrMessageNotFound }

func (e *NotFoundError) Code() diag.Code { return diag.LocMissingMessage }
