package core

import "errors"

var (
	ErrAccountNotFound = errors.New("core: account not found")
	ErrProductNotFound = errors.New("core: product not found")
	ErrInvalidName     = errors.New("core: full name must not be empty")
	ErrInvalidAmount   = errors.New("core: amount must not be negative")
)
