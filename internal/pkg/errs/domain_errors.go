package errs

import "errors"

// Error taxonomy shared by usecases and handlers. Usecase-level errors are marked with one of
// these so handlers can map them to status codes with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrSlotConflict        = errors.New("slot conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaymentRequired     = errors.New("payment required")
	ErrAlreadyCancelled    = errors.New("already cancelled")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrInvalidSignature    = errors.New("invalid signature")
)
