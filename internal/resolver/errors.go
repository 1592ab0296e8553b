package resolver

import (
	"fluentkit/internal/diag"
)

// ErrorKind: вид ошибки разрешения.
type ErrorKind uint8

const (
	Reference ErrorKind = iota
	MissingDefault
	Argument
	Value
	Cyclic
	TooManyPlaceables
)

func (k ErrorKind) String() string {
	switch k {
	case Reference:
		return "Reference"
	case MissingDefault:
		return "MissingDefault"
	case Argument:
		return "Argument"
	case Value:
		return "Value"
	case Cyclic:
		return "Cyclic"
	case TooManyPlaceables:
		return "TooManyPlaceables"
	}
	return "ErrorKind(?)"
}

// Error is a recoverable resolution error. The output string is still
// produced; the error explains which part of it is a placeholder.
type Error struct {
	Kind   ErrorKind
	Detail string
	code   diag.Code
}

func (e *Error) Error() string {
	switch e.Kind {
	case Reference, Argument, Value:
		if e.Detail != "" {
			return e.Detail
		}
	case MissingDefault:
		return "No default"
	case Cyclic:
		return "Cyclic reference"
	case TooManyPlaceables:
		return "Too many placeables"
	}
	return e.Kind.String()
}

// Code maps the error to its RES diagnostic code.
func (e *Error) Code() diag.Code {
	if e.code != diag.UnknownCode {
		return e.code
	}
	switch e.Kind {
	case MissingDefault:
		return diag.ResMissingDefault
	case Argument:
		return diag.ResArgument
	case Value:
		return diag.ResValue
	case Cyclic:
		return diag.ResCyclic
	case TooManyPlaceables:
		return diag.ResTooManyPlaceables
	}
	return diag.ResUnresolvedReference
}

func refError(code diag.Code, detail string) *Error {
	return &Error{Kind: Reference, Detail: detail, code: code}
}
