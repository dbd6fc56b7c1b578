package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

func NewTransportError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *Error {
	return NewTransportError(ErrNetworkConnection, message, cause)
}

func NewTimeoutError(operation string, timeout time.Duration) *Error {
	return NewTransportError(ErrTimeout,
		fmt.Sprintf("operation %s timed out after %v", operation, timeout), nil)
}

func NewEncodingError(cause error) *Error {
	return NewTransportError(ErrEncoding, "failed to encode submission", cause)
}

// NewStatusError maps a non-2xx response onto the error taxonomy
func NewStatusError(statusCode int, detail string) *Error {
	var errType ErrorType
	switch {
	case statusCode == http.StatusTooManyRequests:
		errType = ErrRateLimited
	case statusCode >= 500:
		errType = ErrServerError
	default:
		errType = ErrRejected
	}

	message := fmt.Sprintf("endpoint responded with status %d", statusCode)
	if detail != "" {
		message += ": " + detail
	}

	return &Error{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
	}
}

func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var transportErr *Error
	if errors.As(err, &transportErr) {
		return transportErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransportError(ErrTimeout, "request timed out", err)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewTransportError(ErrTimeout, "request timed out", err)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests"):
		return NewTransportError(ErrRateLimited, "rate limited", err)
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return NewTransportError(ErrTimeout, "network operation timed out", err)
		}
		return NewNetworkError("unknown network error", err)
	}
}

func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrTimeout, ErrServerError, ErrRateLimited:
		return true
	default:
		return false
	}
}

// UserMessage describes the failure for diagnostics. The contact form
// itself only ever shows a generic retry hint.
func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrTimeout:
		return "Request timed out. Please try again."
	case ErrRejected:
		return "The message was rejected by the server."
	case ErrServerError:
		return "The contact service is temporarily unavailable."
	case ErrRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case ErrEncoding:
		return "The message could not be prepared for sending."
	default:
		return "An unexpected error occurred."
	}
}
