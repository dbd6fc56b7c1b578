package transport

import (
	"context"
	"time"
)

// Transport delivers a contact submission to its recipient. Submit returns
// nil once the recipient accepted the message and an error otherwise.
type Transport interface {
	Submit(ctx context.Context, s Submission) error
}

// Submission is the payload sent to the contact endpoint. The honeypot
// never appears here.
type Submission struct {
	ID      string `json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Config struct {
	Endpoint   string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	UserAgent  string
}

type ErrorType string

const (
	ErrNetworkConnection ErrorType = "network_connection"
	ErrTimeout           ErrorType = "timeout"
	ErrRejected          ErrorType = "rejected"
	ErrServerError       ErrorType = "server_error"
	ErrRateLimited       ErrorType = "rate_limited"
	ErrEncoding          ErrorType = "encoding"
)

type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
