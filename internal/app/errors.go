package app

import "errors"

// ErrNotFound and related errors describe validation and lookup failures.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
