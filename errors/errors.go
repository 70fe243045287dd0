package errors

import (
	"fmt"
	"net/http"

	"github.com/aurumascend/raisesignal-backend/logger"
)

type ErrorType string

const (
	ValidationError    ErrorType = "VALIDATION_ERROR"
	PayloadError       ErrorType = "PAYLOAD_ERROR"
	EmailDeliveryError ErrorType = "EMAIL_DELIVERY_ERROR"
	RateLimitError     ErrorType = "RATE_LIMIT_EXCEEDED"
	NotFoundError      ErrorType = "NOT_FOUND"
	ServerError        ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error. Detail is safe to show
// for validation errors; everything else keeps Detail server-side only.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	RetryAfter int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status for the error, defaulting to 500.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports one or more violated submission constraints.
// Detail carries the full field-by-field list and is returned to the client.
func ValidationFailed(code string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       code,
		Message:    "Submission validation failed",
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidPayload reports a malformed JSON or multipart body. Treated the same
// as a validation error for response purposes.
func InvalidPayload(code string, details string) *AppError {
	return &AppError{
		Type:       PayloadError,
		Code:       code,
		Message:    "Invalid request payload",
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewEmailDeliveryError logs the provider failure and returns a sanitized
// error; provider internals never reach the client.
func NewEmailDeliveryError(err error) *AppError {
	logger.GetLogger().Errorw("Email delivery failed", "error", err)
	return &AppError{
		Type:       EmailDeliveryError,
		Message:    "Failed to send your submission. Please try again later.",
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// RateLimitExceeded reports a throttled client. retryAfter is in seconds.
func RateLimitExceeded(message string, retryAfter int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, PayloadError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case RateLimitError:
		return http.StatusTooManyRequests
	case EmailDeliveryError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
