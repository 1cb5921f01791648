package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Sentinel errors, one per failure class the router maps to a status code.
var (
	// ErrInput marks empty or oversized caller input (400-class).
	ErrInput = errors.New("invalid input")
	// ErrBackendProtocol marks a backend response with no recognizable
	// content envelope.
	ErrBackendProtocol = errors.New("backend protocol error")
	// ErrBackendFormat marks backend content that is not valid JSON. The
	// connection succeeded; only the payload is malformed.
	ErrBackendFormat = errors.New("backend format error")
	// ErrInvalidRecipe marks a normalized recipe that failed structural
	// validation.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrHTTPFetch marks a non-2xx, non-redirect response from a URL fetch.
	ErrHTTPFetch = errors.New("http fetch failed")
	// ErrFetchTimeout marks a URL fetch that hit the network timeout.
	ErrFetchTimeout = errors.New("fetch timeout")
	// ErrFetchNetwork marks a transport-level URL fetch failure.
	ErrFetchNetwork = errors.New("fetch network error")
	// ErrJobFailed marks a text-detection job whose terminal state is failure.
	ErrJobFailed = errors.New("document job failed")
	// ErrJobNotReady marks a result query against a job still in progress.
	ErrJobNotReady = errors.New("document job not ready")
	// ErrNoContent marks a fetched page that yielded no usable text.
	ErrNoContent = errors.New("no text content found")
	// ErrConfig marks missing configuration required before any work starts.
	ErrConfig = errors.New("configuration error")
)

// NewAppError builds an AppError wrapping one of the sentinel causes.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// InputErrorf builds an input error with a formatted message.
func InputErrorf(format string, args ...any) error {
	return NewAppError("INPUT_ERROR", fmt.Sprintf(format, args...), ErrInput)
}
