package config

import "errors"

var (
	errBadPath  = errors.New("expected a path like `mono` or `crate::mono`")
	errNegative = errors.New("must not be negative")
	errEmptyDir = errors.New("must be set unless output.in_place is true")
)
