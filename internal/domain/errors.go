package domain

import (
	"errors"
	"fmt"
)

// ErrKind tags an error with a category callers can branch on, instead of
// matching concrete error types from the storage or transport layers.
type ErrKind int

const (
	// KindStorage is any unexpected persistence failure.
	KindStorage ErrKind = iota
	// KindDuplicateEntry means the (region, period) pair was already recorded.
	// Never retried: the intent is "already submitted".
	KindDuplicateEntry
	// KindValidation means the submitted amount could not be parsed or is out
	// of range. The user is asked to resubmit.
	KindValidation
	// KindIntegrityViolation means a referenced office or region does not
	// exist, i.e. the account is not linked.
	KindIntegrityViolation
)

func (k ErrKind) String() string {
	switch k {
	case KindDuplicateEntry:
		return "duplicate_entry"
	case KindValidation:
		return "validation"
	case KindIntegrityViolation:
		return "integrity_violation"
	default:
		return "storage"
	}
}

// Error is the tagged error returned by the recording and parsing paths.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a tagged error with a formatted message.
func NewError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError tags an underlying error with a kind and message.
func WrapError(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind of err, defaulting to KindStorage for errors that
// were never tagged.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
