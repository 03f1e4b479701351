package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the API edge
type Kind string

const (
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "Forbidden"
	KindValidation         Kind = "ValidationError"
	KindPhase              Kind = "PhaseError"
	KindDeadlinePassed     Kind = "DeadlinePassed"
	KindRosterFull         Kind = "RosterFull"
	KindNotFreeAgent       Kind = "NotFreeAgent"
	KindInsufficientBudget Kind = "InsufficientBudget"
	KindNotFound           Kind = "NotFound"
	KindInternal           Kind = "InternalError"
)

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindPhase, KindDeadlinePassed, KindRosterFull, KindNotFreeAgent, KindInsufficientBudget:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message. Internal errors are not echoed.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindInternal {
			return "internal error"
		}
		return e.Msg
	}
	return "internal error"
}

func Unauthorized(format string, args ...any) *Error { return New(KindUnauthorized, format, args...) }
func Forbidden(format string, args ...any) *Error    { return New(KindForbidden, format, args...) }
func Validation(format string, args ...any) *Error   { return New(KindValidation, format, args...) }
func Phase(format string, args ...any) *Error        { return New(KindPhase, format, args...) }
func NotFound(format string, args ...any) *Error     { return New(KindNotFound, format, args...) }
func RosterFull(format string, args ...any) *Error   { return New(KindRosterFull, format, args...) }
func NotFreeAgent(format string, args ...any) *Error { return New(KindNotFreeAgent, format, args...) }

func InsufficientBudget(format string, args ...any) *Error {
	return New(KindInsufficientBudget, format, args...)
}

func DeadlinePassed(format string, args ...any) *Error {
	return New(KindDeadlinePassed, format, args...)
}
