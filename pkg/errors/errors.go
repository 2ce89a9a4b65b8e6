package errors

import (
	stderrors "errors"
	"fmt"
)

// EngineError is the interface implemented by all engine-fault errors. These
// are host-visible faults (a missing feature, a bad embedding call), distinct
// from script-level thrown values, which travel as vm.Thrown.
type EngineError interface {
	error
	Kind() string // e.g. "NotImplemented"
	// Message returns the specific error message without the kind prefix.
	Message() string
	Unwrap() error
}

// NotImplementedError reports a built-in feature that is valid in the
// identifier space but has no body in the selected build profile.
type NotImplementedError struct {
	Feature string
	Cause   error
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("Not Implemented: %s", e.Feature)
}
func (e *NotImplementedError) Kind() string    { return "NotImplemented" }
func (e *NotImplementedError) Message() string { return e.Feature }
func (e *NotImplementedError) Unwrap() error   { return e.Cause }

// NotImplemented builds a NotImplementedError for the named feature.
func NotImplemented(feature string) error {
	return &NotImplementedError{Feature: feature}
}

// IsNotImplemented reports whether err is (or wraps) a NotImplementedError.
func IsNotImplemented(err error) bool {
	var nie *NotImplementedError
	return stderrors.As(err, &nie)
}
