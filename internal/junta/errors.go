// Package junta implements the scheduling core of a rotating savings pool:
// roster validation, day assignment, the payment ledger and the report snapshot.
package junta

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange        = errors.New("a date range with from <= to is required")
	ErrInvalidContribution = errors.New("daily contribution must be greater than zero")
	ErrNoParticipants      = errors.New("at least one participant is required")
	ErrEmptyName           = errors.New("participant name is required")
	ErrRosterMismatch      = errors.New("participant count must equal the number of days")
	ErrUnknownStrategy     = errors.New("unknown assignment strategy")
	ErrInvalidCurrency     = errors.New("currency must be an ISO 4217 code")

	ErrNotAssigned     = errors.New("junta dates have not been assigned")
	ErrAlreadyAssigned = errors.New("junta dates are already assigned")

	ErrDayOutOfRange       = errors.New("day is outside the junta date range")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrInvalidMethod       = errors.New("unknown payment method")
	ErrRecipientRequired   = errors.New("mobile transfers require a recipient")
	ErrUnexpectedRecipient = errors.New("only mobile transfers take a recipient")
	ErrUnknownRecipient    = errors.New("recipient is not a junta collector")

	ErrRevisionConflict  = errors.New("payment was changed by someone else")
	ErrMalformedSnapshot = errors.New("malformed junta snapshot")
)

// ValidationError is a rejected input. Nothing is committed when one is returned.
type ValidationError struct {
	Field  string
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Field, e.Err, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func invalidf(field string, err error, format string, args ...any) error {
	return &ValidationError{Field: field, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
