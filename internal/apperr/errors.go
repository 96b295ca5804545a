// Package apperr defines the error taxonomy shared by the sync layer.
// Every failure that crosses a component boundary is an *Error carrying a
// Kind, so callers can decide on fallback, session reset or display without
// string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConnectivity means the remote store was unreachable or timed out.
	KindConnectivity
	// KindAuth means the remote rejected the session credential (HTTP 401).
	KindAuth
	// KindDuplicateKey means a create collided with an existing record (HTTP 409).
	KindDuplicateKey
	// KindDuplicateAssociation means a task is already a member of the sprint.
	KindDuplicateAssociation
	// KindValidation means the input was rejected before or by the remote (HTTP 400).
	KindValidation
	// KindNotFound means the entity does not exist (HTTP 404).
	KindNotFound
	// KindImmutableColumn means an attempt to delete a default column.
	KindImmutableColumn
	// KindRemote is any other remote failure (e.g. HTTP 500).
	KindRemote
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindConnectivity:         "connectivity",
	KindAuth:                 "auth",
	KindDuplicateKey:         "duplicate_key",
	KindDuplicateAssociation: "duplicate_association",
	KindValidation:           "validation",
	KindNotFound:             "not_found",
	KindImmutableColumn:      "immutable_column",
	KindRemote:               "remote",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified error. Field is set for validation failures.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels, so errors.Is(err, apperr.ErrNotFound) works for
// any *Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Field == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrConnectivity         = &Error{Kind: KindConnectivity}
	ErrAuth                 = &Error{Kind: KindAuth}
	ErrDuplicateKey         = &Error{Kind: KindDuplicateKey}
	ErrDuplicateAssociation = &Error{Kind: KindDuplicateAssociation}
	ErrValidation           = &Error{Kind: KindValidation}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrImmutableColumn      = &Error{Kind: KindImmutableColumn}
	ErrRemote               = &Error{Kind: KindRemote}
)

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a field-level validation error.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound creates a not-found error for an entity kind and ID.
func NotFound(entity, id string) *Error {
	return Newf(KindNotFound, "%s %s not found", entity, id)
}

// KindOf returns the Kind of err, or KindUnknown when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
