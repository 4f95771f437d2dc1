package experiments

import "errors"

var (
	ErrNotFound          = errors.New("experiment not found")
	ErrInvalidExperiment = errors.New("experiment needs at least 2 variants")
	ErrInvalidIndex      = errors.New("winner index out of range")
)
