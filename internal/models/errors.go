package models

import "errors"

// Validation sentinels. Every failure wraps one of these with the
// offending parameter and value so callers can match with errors.Is.
var (
	ErrInvalidOdds        = errors.New("invalid odds")
	ErrInvalidProbability = errors.New("invalid probability")
	ErrInvalidInput       = errors.New("invalid input")
)
