package cli

import (
	"errors"
	"strconv"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: cache errors, remote failures, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or a missing project context.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: unreadable import files and corrupt export documents.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid priorities, dates, risk scores, duplicate IDs,
	// duplicate sprint members and attempts to delete default columns.
	ExitValidation = 5

	// ExitAuth indicates the remote store rejected the session.
	ExitAuth = 6
)

// CodeError carries the process exit code of a failed command.
type CodeError struct {
	Code int
	Err  error

	reported bool
}

func (e *CodeError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an explicit exit code.
func Exit(code int, err error) error {
	return &CodeError{Code: code, Err: err}
}

// ExitCode returns the exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *CodeError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitCodeFor(err)
}

// ExitCodeFor maps an error's classification to an exit code.
func ExitCodeFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return ExitNotFound
	case apperr.KindValidation, apperr.KindDuplicateKey,
		apperr.KindDuplicateAssociation, apperr.KindImmutableColumn:
		return ExitValidation
	case apperr.KindAuth:
		return ExitAuth
	default:
		return ExitError
	}
}

// ErrorCode is the machine-readable code printed in JSON errors.
func ErrorCode(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return "NOT_FOUND"
	case apperr.KindValidation:
		return "VALIDATION_ERROR"
	case apperr.KindDuplicateKey:
		return "DUPLICATE_KEY"
	case apperr.KindDuplicateAssociation:
		return "DUPLICATE_ASSOCIATION"
	case apperr.KindImmutableColumn:
		return "IMMUTABLE_COLUMN"
	case apperr.KindAuth:
		return "AUTH_ERROR"
	case apperr.KindConnectivity:
		return "CONNECTIVITY_ERROR"
	case apperr.KindRemote:
		return "REMOTE_ERROR"
	default:
		return "ERROR"
	}
}

// Reported reports whether err has already been printed by an
// OutputFormatter.
func Reported(err error) bool {
	var ee *CodeError
	return errors.As(err, &ee) && ee.reported
}
