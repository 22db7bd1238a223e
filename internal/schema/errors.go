package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the targeted id matches no row.
	ErrNotFound = errors.New("not found")
	// ErrReferenced means a delete was rejected because other rows still point at the record.
	ErrReferenced = errors.New("still referenced")
	// ErrUnauthorized means the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError describes malformed, missing or out-of-enum input.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
