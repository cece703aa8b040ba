package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown importer, kind or role.
	ErrUnsupportedType = errors.New("unsupported type")

	// Import Errors.

	// ErrNotApplicable indicates a strategy does not recognise the folder.
	// It is never surfaced to users; the orchestrator moves on silently.
	ErrNotApplicable = errors.New("importer not applicable")

	// ErrImportCancelled indicates the import was cancelled by the caller.
	// It always propagates out of the orchestrator and aborts pending merges.
	ErrImportCancelled = errors.New("import cancelled")

	// ErrImportFatal indicates the folder cannot be imported at all.
	// The root descriptor is unreadable or no modules were discovered.
	ErrImportFatal = errors.New("import failed")

	// Graph Errors.

	// ErrDanglingReference indicates an edge names an entity that is absent.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDuplicateEntity indicates two entities share an identity key.
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrInvariantViolation indicates the builder produced an inconsistent graph.
	// This is a programming error, never a data-quality problem.
	ErrInvariantViolation = errors.New("graph invariant violated")
)

// ImportError is a fatal import failure for one folder.
// UserMessage is short and suitable for notifications; LogMessage carries
// the diagnostic detail.
type ImportError struct {
	UserMessage string
	LogMessage  string
	Cause       error
}

// NewImportError creates a fatal import error.
func NewImportError(userMessage, logMessage string, cause error) *ImportError {
	return &ImportError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Cause:       cause,
	}
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Cause)
	}
	return e.UserMessage
}

// Unwrap exposes both ErrImportFatal and the underlying cause.
func (e *ImportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrImportFatal}
	}
	return []error{ErrImportFatal, e.Cause}
}

// AsImportError extracts an ImportError from an error chain.
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
