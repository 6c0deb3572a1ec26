package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a booking error so callers can map it onto their
// own transport (HTTP status codes, broker acknowledgements and so on).
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindPolicyViolation   Kind = "policy_violation"
	KindConflict          Kind = "conflict"
	KindIllegalTransition Kind = "illegal_transition"
)

// Error is the single error type returned by the booking engine.  It
// carries the category plus any structured detail the caller might
// want to surface: the schedule violations for a policy_violation and
// the ids of the overlapping reservations for a conflict.
type Error struct {
	Kind        Kind
	Message     string
	Violations  []Violation
	ConflictIDs []uint64
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	codes := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		codes = append(codes, v.String())
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(codes, ", "))
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not_found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// IllegalTransitionf builds an illegal_transition error.
func IllegalTransitionf(format string, args ...any) *Error {
	return &Error{Kind: KindIllegalTransition, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a conflict error listing the overlapping reservations.
func Conflictf(ids []uint64, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), ConflictIDs: ids}
}

// PolicyViolation wraps the violations found by Check.
func PolicyViolation(vs []Violation) *Error {
	return &Error{Kind: KindPolicyViolation, Message: "reservation breaks the space policy", Violations: vs}
}

// KindOf returns the category of err, or "" when err is not a booking error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// IsKind reports whether err is a booking error of the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
