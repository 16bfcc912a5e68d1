package config

import "errors"

// Validation errors returned (wrapped) by [Config.Validate].
var (
	ErrInvalidBounds     = errors.New("config: world width and height must be positive")
	ErrInvalidElasticity = errors.New("config: coefficient outside [0, 1]")
	ErrInvalidRadius     = errors.New("config: invalid spawn radius range")
	ErrInvalidRate       = errors.New("config: fps must be positive and frames non-negative")

	ErrUnknownParam = errors.New("config: unknown world parameter")
)
