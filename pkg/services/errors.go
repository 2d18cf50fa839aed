package services

import "errors"

// Error taxonomy for repository operations. Callers match with errors.Is;
// wrapped messages carry the title or path that triggered the failure.
var (
	ErrNotFound          = errors.New("post not found")
	ErrDuplicateTitle    = errors.New("duplicate title")
	ErrMalformedDocument = errors.New("malformed document")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIO                = errors.New("io failure")
)
