package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrCorruptValue       = errors.New("corrupt persisted value")
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	ErrInvalidTransition  = errors.New("invalid booking transition")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUnknownProvider    = errors.New("unknown provider")
	ErrUnknownMachine     = errors.New("unknown machine")
	ErrNoProviders        = errors.New("no providers available")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidOTP         = errors.New("invalid otp code")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrInvalidDate        = errors.New("invalid date")
)
