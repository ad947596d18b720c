package analyses

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNoResume    = errors.New("no resume on file")
	ErrEmptyUpload = errors.New("empty upload")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeInternal   = "internal_error"
)
