package config

import "errors"

var (
	// ErrInvalidConfig is returned when a loaded value fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig is returned when a source (.env, YAML, env) cannot be read or decoded.
	ErrLoadConfig = errors.New("load config failed")
)
