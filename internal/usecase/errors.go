package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDuplicateSubmission   = errors.New("duplicate submission")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
