package net

import "github.com/pkg/errors"

// Errors returned by network assembly, inference and training. Returned
// errors wrap one of these with context; test with errors.Is.
var (
	// ErrDimensionMismatch reports vectors or adjacent layers of incompatible widths.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyDataset reports a dataset with no samples.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidNetwork reports a network that cannot be assembled.
	ErrInvalidNetwork = errors.New("invalid network")

	// ErrInvalidArgument reports an argument outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")
)
