package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRootURL indicates the file load root could not be derived for a request
type ErrRootURL struct {
	Root  string
	Cause error
}

func (e *ErrRootURL) Error() string {
	return fmt.Sprintf("cannot derive file load root from %q: %v", e.Root, e.Cause)
}

func (e *ErrRootURL) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
