// Package errors declares the failure kinds shared by the toolkit and the
// single rejection type surfaced by the transaction processor.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Failure kinds. Keep in the order they can occur while handling a request.
var (
	ErrMalformedInput   = stderrors.New("malformed input")
	ErrUnknownCommand   = stderrors.New("unknown command")
	ErrValidationFailed = stderrors.New("validation failed")
	ErrNotFound         = stderrors.New("not found")
	ErrSerialization    = stderrors.New("serialization failure")
	ErrSigning          = stderrors.New("signing failure")
	ErrStore            = stderrors.New("state store failure")
)

// InvalidTransactionError rejects a whole request. Only Msg is visible to the
// ledger; Kind is kept for in-process inspection with errors.Is.
type InvalidTransactionError struct {
	Msg  string
	Kind error
}

func (e *InvalidTransactionError) Error() string {
	return e.Msg
}

func (e *InvalidTransactionError) Unwrap() error {
	return e.Kind
}

// Invalid builds an InvalidTransactionError of the given kind.
func Invalid(kind error, format string, args ...any) error {
	return &InvalidTransactionError{
		Msg:  fmt.Sprintf(format, args...),
		Kind: kind,
	}
}

// AsInvalid collapses any error into an InvalidTransactionError. Errors that
// already are one pass through unchanged; anything else keeps its message
// and is classified as a validation failure unless it wraps a known kind.
func AsInvalid(err error) *InvalidTransactionError {
	if err == nil {
		return nil
	}
	var invalid *InvalidTransactionError
	if stderrors.As(err, &invalid) {
		return invalid
	}
	return &InvalidTransactionError{Msg: err.Error(), Kind: KindOf(err)}
}

// IsInvalidTransaction reports whether err is a request rejection.
func IsInvalidTransaction(err error) bool {
	var invalid *InvalidTransactionError
	return stderrors.As(err, &invalid)
}

// KindOf returns the failure kind wrapped by err, defaulting to
// ErrValidationFailed.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrMalformedInput,
		ErrUnknownCommand,
		ErrValidationFailed,
		ErrNotFound,
		ErrSerialization,
		ErrSigning,
		ErrStore,
	} {
		if stderrors.Is(err, kind) {
			return kind
		}
	}
	return ErrValidationFailed
}

var kindNames = map[error]string{
	ErrMalformedInput:   "malformed_input",
	ErrUnknownCommand:   "unknown_command",
	ErrValidationFailed: "validation_failed",
	ErrNotFound:         "not_found",
	ErrSerialization:    "serialization",
	ErrSigning:          "signing",
	ErrStore:            "store",
}

// KindName returns a stable label for the failure kind of err, or "" for nil.
func KindName(err error) string {
	if err == nil {
		return ""
	}
	return kindNames[KindOf(err)]
}
