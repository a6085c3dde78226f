package types

import "errors"

// Entity operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidName   = errors.New("name must not be empty")
	ErrDuplicateName = errors.New("an ingredient with this name already exists")
)

// Validation errors.
var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidCount    = errors.New("count must be positive")
)
