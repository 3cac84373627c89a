package domain

import "errors"

var (
	ErrInvalidLane = errors.New("invalid lane")
)
