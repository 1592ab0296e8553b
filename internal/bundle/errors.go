package bundle

import (
	"errors"
	"fmt"

	"fluentkit/internal/diag"
)

var (
	// ErrMessageNotFound is returned by Format when the id is unknown.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNoValue: сообщение есть, но у него только атрибуты.
	ErrNoValue = errors.New("message has no value")
	// ErrFunctionExists is returned by AddFunction for a taken name.
	ErrFunctionExists = errors.New("function already registered")
)

// EntryKind names the namespace of a colliding entry.
type EntryKind string

const (
	KindMessage EntryKind = "message"
	KindTerm    EntryKind = "term"
)

// OverrideError reports an entry that AddResourceStrict refused to replace.
type OverrideError struct {
	Kind EntryKind
	ID   string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("Attempt to override an existing %s: %q", e.Kind, e.ID)
}

func (e *OverrideError) Code() diag.Code { return diag.ResOverride }
