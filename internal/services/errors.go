package services

import "errors"

// Error taxonomy surfaced across the boundary. Storage failures that match
// none of these pass through wrapped and map to a 500.
var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
)
