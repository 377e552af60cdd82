package utils

import (
	"errors"
	"fmt"
)

// Common application errors used across services.
var (
	ErrTraderNotFound     = errors.New("TRADER_NOT_FOUND")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrCardNotFound       = errors.New("SCRATCHCARD_NOT_FOUND")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrTraderCodeExists   = errors.New("TRADER_CODE_EXISTS")
	ErrTraderEmailExists  = errors.New("TRADER_EMAIL_EXISTS")
	ErrUserExists         = errors.New("USER_EXISTS")
	ErrPendingCardExists  = errors.New("PENDING_CARD_EXISTS")
	ErrNoPendingCards     = errors.New("NO_PENDING_CARDS")
	ErrNoRedeemableCards  = errors.New("NO_REDEEMABLE_CARDS")
	ErrInvalidTransition  = errors.New("INVALID_STATUS_TRANSITION")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
)

// ValidationError carries a caller-facing message for malformed input,
// e.g. a range filter named without either bound.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
