package apperrors

import "errors"

var (
	ErrUnknownDialect = errors.New("unknown sql dialect")
	ErrMissingSource  = errors.New("source document path not configured")
)
