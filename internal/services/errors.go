package services

import "errors"

// Service-level failure classes. Handlers map these to HTTP statuses with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is the single authentication failure mode: bad
	// signature, malformed token, or expiry all surface as this.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden marks an authenticated caller without ownership or role.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition marks a rejected order status transition.
	ErrInvalidTransition = errors.New("invalid status transition")
)
