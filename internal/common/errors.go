package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict") // e.g., username already exists
	ErrValidation   = errors.New("validation failed")
)

// ClientError carries a message that is safe to show to the caller and
// unwraps to one of the sentinels above.
type ClientError struct {
	Kind    error
	Message string
}

func (e *ClientError) Error() string { return e.Message }

func (e *ClientError) Unwrap() error { return e.Kind }

// Errorf creates a ClientError of the given kind with a formatted message.
func Errorf(kind error, format string, args ...interface{}) error {
	return &ClientError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	// Missing and duplicate names are both reported as bad requests.
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text that may be sent to the client for err.
// Internal errors are never echoed back.
func PublicMessage(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Message
	}
	switch HTTPStatusFromError(err) {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusUnauthorized:
		return "Unauthorized"
	}
	return err.Error()
}
