package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrUnsupportedSchema will throw if a locator scheme has no reader
	ErrUnsupportedSchema   = errors.New("Unsupported schema")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrInvalidJsonFormat   = errors.New("invalid JSON format")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// caller input
	ErrValidation = errors.New("validation failed")

	// content store
	ErrUpload  = errors.New("content upload failed")
	ErrResolve = errors.New("content resolve failed")

	// ledger writes
	ErrMint            = errors.New("mint failed")
	ErrApprove         = errors.New("approve failed")
	ErrAlreadyApproved = errors.New("operator already approved")
	ErrList            = errors.New("list failed")
	ErrPurchase        = errors.New("purchase failed")
	ErrBid             = errors.New("bid failed")
	ErrRemove          = errors.New("remove failed")
	ErrSettle          = errors.New("settle auction failed")

	// ledger reads
	ErrRead                   = errors.New("ledger read failed")
	ErrMarketplaceUnavailable = errors.New("marketplace unavailable")

	// listing state
	ErrState        = errors.New("listing is not in the required state")
	ErrListingEnded = xerrors.Errorf("listing ended: %w", ErrState)
	ErrBidTooLow    = errors.New("bid too low")
)

// Violation is one rejected input field
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every violation of a request instead of stopping
// at the first one.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Add(field, reason string) {
	e.Violations = append(e.Violations, Violation{Field: field, Reason: reason})
}

func (e *ValidationError) Addf(field, format string, args ...interface{}) {
	e.Add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no violation was added
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Reason
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Error tags a cause with one of the sentinel kinds above, so callers can
// match the kind with errors.Is and still reach the cause.
type Error struct {
	Kind  error
	Cause error
}

func NewError(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &Error{Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
