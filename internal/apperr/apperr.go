package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so transport code can map it to a status code
// without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota // malformed or rejected input
	KindNotFound               // referenced entity absent
	KindForbidden              // caller is not allowed to perform the operation
	KindStorage                // opaque store failure, not a caller mistake
)

// Error carries a kind alongside the message and an optional wrapped cause.
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

// Validation reports malformed input (empty content, invalid status value, bad id).
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent post, comment or user.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden reports an operation the caller may never perform (self-upvote,
// self-follow, non-admin moderation).
func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// Storage wraps an opaque store-level failure. Callers must not retry except
// where the operation is documented as idempotent.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Msg: "storage error", Err: err}
}

// KindOf returns the kind of err, or KindStorage when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func IsValidation(err error) bool { return kindIs(err, KindValidation) }
func IsNotFound(err error) bool   { return kindIs(err, KindNotFound) }
func IsForbidden(err error) bool  { return kindIs(err, KindForbidden) }

func kindIs(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
