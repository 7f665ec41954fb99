package usecase

import "errors"

var (
	// ErrForbidden covers every "authenticated but not entitled" case:
	// wrong role, not a participant, not the owning side of the record.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
