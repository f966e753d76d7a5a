package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the transport layer can map it to a
// status code without string matching.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE"
	KindConflict     Kind = "CONFLICT"
	KindInvalidInput Kind = "INVALID_INPUT"
	KindUnavailable  Kind = "UNAVAILABLE"
)

// Error is a domain error with enough detail for the caller to correct
// the request. QuestionIDs carries the offending question ids for
// conflict and duplicate-input errors.
type Error struct {
	Kind        Kind
	Msg         string
	QuestionIDs []int64
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing or inactive resource.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidState reports a resource in a state that forbids the operation.
func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate answer attempt, naming the question ids.
func Conflict(msg string, questionIDs ...int64) *Error {
	return &Error{Kind: KindConflict, Msg: msg, QuestionIDs: questionIDs}
}

// InvalidInput reports a malformed request. questionIDs may name the
// duplicated ids when the request repeats a question.
func InvalidInput(msg string, questionIDs ...int64) *Error {
	return &Error{Kind: KindInvalidInput, Msg: msg, QuestionIDs: questionIDs}
}

// Unavailable wraps a backend failure that callers must degrade around.
func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: err}
}

// KindOf extracts the Kind of err, or "" if err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Detail extracts the full domain error, or nil.
func Detail(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
