// Package apperror defines the error taxonomy shared by all services.
// Usecase layers return these sentinels (optionally wrapped); the HTTP
// layer is the single place that maps them to status codes.
package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("invalid request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// Favorite toggle conflicts
	ErrAlreadyFavorited = errors.New("already favorited")
	ErrNotFavorited     = errors.New("not favorited")
)

// Validation wraps ErrValidation with a field-specific message
func Validation(msg string) error {
	return &messageError{sentinel: ErrValidation, msg: msg}
}

// Unauthorized wraps ErrUnauthorized with a caller-safe message
func Unauthorized(msg string) error {
	return &messageError{sentinel: ErrUnauthorized, msg: msg}
}

// NotFound wraps ErrNotFound with a resource-specific message
func NotFound(msg string) error {
	return &messageError{sentinel: ErrNotFound, msg: msg}
}

// Forbidden wraps ErrForbidden with an operation-specific message
func Forbidden(msg string) error {
	return &messageError{sentinel: ErrForbidden, msg: msg}
}

type messageError struct {
	sentinel error
	msg      string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.sentinel }

// Status maps an error to its HTTP status code. Unrecognized errors are
// treated as internal so no detail leaks to the client.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyFavorited), errors.Is(err, ErrNotFavorited):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error. Internal errors
// are masked.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
