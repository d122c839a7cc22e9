package domain

import "errors"

// Sentinel errors shared across services and repositories.
// Repositories translate driver-level errors (e.g. sql.ErrNoRows) into these
// so controllers can map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)
