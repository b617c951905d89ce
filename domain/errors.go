package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match them with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTrainingRow  = errors.New("invalid training row")
	ErrInsufficientData    = errors.New("insufficient training data")
	ErrRoleNotFound        = errors.New("role not found in dataset")
	ErrDecodeFailure       = errors.New("recommended laptop code has no mapping")
	ErrLaptopUnavailable   = errors.New("laptop not available")
	ErrCatalogLookup       = errors.New("catalog lookup failed")
	ErrLaptopNotFound      = errors.New("laptop not found")
	ErrReservationConflict = errors.New("laptop already reserved")
	ErrAssignmentNotFound  = errors.New("no active assignment found")
	ErrMaintenanceNotFound = errors.New("maintenance record not found")
	ErrTicketNotFound      = errors.New("ticket not found")
)

// TicketedError is returned by recommendation failures. Every one of them
// has been recorded as a ticket before it reaches the caller.
type TicketedError struct {
	Kind     error
	TicketID string
	Status   string
	Cause    error
}

func (e *TicketedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Status, e.Cause)
	}
	return e.Status
}

func (e *TicketedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// StatusMessage returns the human readable status carried by err, falling
// back to err.Error().
func StatusMessage(err error) string {
	var te *TicketedError
	if errors.As(err, &te) {
		return te.Status
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// StatusError pairs a lifecycle failure kind with the message shown to the
// operator. These failures are not ticketed.
type StatusError struct {
	Kind    error
	Message string
}

func NewStatusError(kind error, format string, args ...any) *StatusError {
	return &StatusError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *StatusError) Error() string { return e.Message }

func (e *StatusError) Unwrap() error { return e.Kind }
