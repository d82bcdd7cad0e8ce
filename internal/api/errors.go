package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNetwork      = errors.New("Unable to reach the API")
	ErrUnauthorized = errors.New("Unauthorized, please sign in again")
	ErrEmptyReply   = errors.New("Empty reply from the API")
)

// APIError is a non-2xx reply, or a 2xx reply with success set to false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if txt := http.StatusText(e.Status); txt != "" {
		return txt
	}
	return fmt.Sprintf("API error (%d)", e.Status)
}

// ValidationError is raised before any request is issued.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// StatusOf returns the HTTP status of an *APIError, 0 otherwise.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
