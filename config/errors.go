package config

import "errors"

var (
	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("config: missing required environment variables")

	// ErrInvalidBool indicates a boolean override that does not parse.
	ErrInvalidBool = errors.New("config: invalid boolean")
)
