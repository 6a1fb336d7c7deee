package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoPendingCode  = errors.New("no pending code")
	ErrCodeExpired    = errors.New("code expired")
	ErrCodeMismatch   = errors.New("code mismatch")
	ErrUserNotFound   = errors.New("user not found")
	ErrDeliveryFailed = errors.New("delivery failed")
)

// DeliveryError reports a messaging provider failure. It matches ErrDeliveryFailed
// and carries whatever detail payload the provider returned.
type DeliveryError struct {
	Details any
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return ErrDeliveryFailed.Error()
	}
	return ErrDeliveryFailed.Error() + ": " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool { return target == ErrDeliveryFailed }
