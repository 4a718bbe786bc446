package engine

import "github.com/user/hunter-idle/internal/types"

// ErrorKind classifies action failures. Every action-specific failure is
// turned into a structured result at the action boundary; the engine never
// retries on its own.
type ErrorKind int

const (
	// KindValidation marks malformed or missing request fields.
	KindValidation ErrorKind = iota
	// KindNotFound marks unknown player, building, research, run or item ids.
	KindNotFound
	// KindUnaffordable marks insufficient resources; Missing carries the
	// per-resource shortfall.
	KindUnaffordable
	// KindConflict marks state conflicts: busy companions, already-researched
	// entries, runs not yet complete, already-extracted shadows.
	KindConflict
	// KindInternal marks storage failures.
	KindInternal
)

// Error is a structured action failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Missing types.ResourceMap
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func unaffordableError(message string, missing types.ResourceMap) *Error {
	return &Error{Kind: KindUnaffordable, Message: message, Missing: missing}
}

func conflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func internalError(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}
