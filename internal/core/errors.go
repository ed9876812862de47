package core

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMissingField         = errors.New("missing field")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrNotFound             = errors.New("not found")
)
