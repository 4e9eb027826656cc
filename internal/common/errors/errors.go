// Package errors provides the standardized error taxonomy for the service.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Store / persistence errors.
	ErrCodeRemoteUnavailable ErrorCode = "REMOTE_UNAVAILABLE"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"

	// External listing provider errors.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"

	// Input errors.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_ERROR"

	// AI / notification errors.
	ErrCodeAIGenerationFailed     ErrorCode = "AI_GENERATION_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewRemoteUnavailable creates the error raised when a remote store call
// times out or fails at the transport level. The caller decides whether
// to fall back to the local cache; no automatic retries are performed.
func NewRemoteUnavailable(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteUnavailable,
		Message:   "Remote store unavailable",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteStatusError creates the error raised when the remote store
// responds with a non-success status code.
func NewRemoteStatusError(op string, status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteUnavailable,
		Message:   "Remote store returned non-success status",
		Details:   fmt.Sprintf("op: %s, status: %d", op, status),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailable creates a retryable local cache error.
func NewCacheUnavailable(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Local cache store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderError creates the error for a failed external listing
// fetch. Callers absorb it into an empty result set for that provider.
func NewProviderError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   fmt.Sprintf("Listing provider '%s' error", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderStatusError creates the error for a non-success response
// from an external listing API.
func NewProviderStatusError(provider string, status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   fmt.Sprintf("Listing provider '%s' returned non-success status", provider),
		Details:   fmt.Sprintf("status: %d", status),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable input validation error,
// rejected synchronously before any network call.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAIGenerationFailed creates a retryable generative model error.
func NewAIGenerationFailed(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAIGenerationFailed,
		Message:   "AI generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailed creates a retryable notification error.
func NewNotificationSendFailed(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
