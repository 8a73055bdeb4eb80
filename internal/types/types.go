package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the default Monarch Money API base URL
	DefaultBaseURL = "https://api.monarchmoney.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "monarch-mcp/1.0.0"
)

// Session represents an authenticated Monarch Money session.
type Session struct {
	Token      string    `json:"token"`
	Email      string    `json:"email,omitempty"`
	DeviceUUID string    `json:"deviceUuid,omitempty"`
	SavedAt    time.Time `json:"savedAt,omitempty"`
}

// Logger interface for debug logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RetryConfig configures transport retry behavior
type RetryConfig struct {
	MaxRetries int           `json:"maxRetries"`
	RetryWait  time.Duration `json:"retryWait"`
	MaxWait    time.Duration `json:"maxWait"`
}

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMFARequired is returned when MFA is required
	ErrMFARequired = errors.New("multi-factor authentication required")

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = errors.New("login failed")

	// ErrSessionExpired is returned when the session has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
