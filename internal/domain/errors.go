package domain

import "errors"

// Sentinel errors shared across services and repositories. Callers match
// with errors.Is; the delivery layer maps them to HTTP status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateLabel     = errors.New("label already in use")
	ErrSeatBlocked        = errors.New("seat is blocked")
	ErrSeatOccupied       = errors.New("seat already occupied")
	ErrGuestAlreadySeated = errors.New("guest already seated")
	ErrClaimRejected      = errors.New("seat claim rejected")
	ErrUnsupportedVersion = errors.New("unsupported chart version")
)
