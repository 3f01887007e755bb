package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds    = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidInput         = 4003
	CodeAuthenticationFailed = 4010
	CodeSpotNotFound         = 4040
	CodeAccountNotFound      = 4041
	CodeAccountLocked        = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeUnavailable    = 5030
)

// Base error types
var (
	// ErrAuthenticationFailed is returned when the request credential is missing or invalid
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInsufficientFunds is returned when both free credits and balance are exhausted
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when a credit amount is out of the allowed range
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidInput is returned when submitted spot fields are malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrSpotNotFound is returned when the requested spot doesn't exist or is inactive
	ErrSpotNotFound = errors.New("spot not found")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when trying to create an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountLocked is returned when an account row is locked by another operation
	ErrAccountLocked = errors.New("account is locked by another operation")

	// ErrUnavailable is returned when a storage or notification collaborator fails
	// unexpectedly; callers may retry these, never the domain errors above
	ErrUnavailable = errors.New("service temporarily unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrAuthenticationFailed):
		return CodeAuthenticationFailed
	case errors.Is(err, ErrSpotNotFound):
		return CodeSpotNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrAccountLocked):
		return CodeAccountLocked
	case errors.Is(err, ErrUnavailable):
		return CodeUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information when a grant is denied
type InsufficientFundsError struct {
	TgID        int64
	Price       int64
	Balance     int64
	FreeCredits int
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: price %d, balance %d, free credits %d",
		e.TgID, e.Price, e.Balance, e.FreeCredits)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "insufficient_funds",
		"tg_id":        e.TgID,
		"price":        e.Price,
		"balance":      e.Balance,
		"free_credits": e.FreeCredits,
		"error_code":   CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(tgID, price, balance int64, freeCredits int) error {
	return &InsufficientFundsError{
		TgID:        tgID,
		Price:       price,
		Balance:     balance,
		FreeCredits: freeCredits,
	}
}

// ValidationError describes a rejected spot submission field
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is checks if the target error is an ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsInsufficientFundsError checks if the error is related to exhausted credit
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAuthenticationError checks if the error is an authentication failure
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSpotNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsInvalidInputError checks if the error is a submission validation error
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAccountLockedError checks if the error is related to a locked account
func IsAccountLockedError(err error) bool {
	return errors.Is(err, ErrAccountLocked)
}

// IsUnavailableError checks if the error came from a failing collaborator
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
