package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks a referenced deck or card that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument marks caller input that failed validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code string, format string, args ...any) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...))
}

func Invalid(code string, format string, args ...any) *Error {
	return New(http.StatusBadRequest, code, fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...))
}

// From resolves err to an *Error, defaulting to 500 with fallbackCode.
func From(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	default:
		return New(http.StatusInternalServerError, fallbackCode, err)
	}
}
