package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Each kind maps to exactly one HTTP status class.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindAliasConflict       Kind = "ALIAS_CONFLICT"
	KindAuthorizationDenied Kind = "AUTHORIZATION_DENIED"
	KindValidation          Kind = "VALIDATION_ERROR"
)

// Error is the single error type returned by the note domain.
// Resource and Identifier name the offending object so clients can render
// a precise message without seeing storage internals.
type Error struct {
	Kind       Kind
	Resource   string
	Identifier string
	Message    string
}

func (e *Error) Error() string {
	if e.Identifier == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s %q)", e.Kind, e.Message, e.Resource, e.Identifier)
}

func NotFound(resource, identifier string) *Error {
	return &Error{
		Kind:       KindNotFound,
		Resource:   resource,
		Identifier: identifier,
		Message:    resource + " not found",
	}
}

func AliasConflict(alias string) *Error {
	return &Error{
		Kind:       KindAliasConflict,
		Resource:   "alias",
		Identifier: alias,
		Message:    "alias is already in use",
	}
}

func Denied(action, identifier string) *Error {
	return &Error{
		Kind:       KindAuthorizationDenied,
		Resource:   "note",
		Identifier: identifier,
		Message:    "not allowed to " + action + " this note",
	}
}

func Validation(field, message string) *Error {
	return &Error{
		Kind:       KindValidation,
		Resource:   field,
		Identifier: "",
		Message:    field + " " + message,
	}
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
