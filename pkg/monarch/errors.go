package monarch

import (
	"errors"

	internalTypes "github.com/eshaffer321/monarch-mcp/internal/types"
)

// Sentinel errors. These alias the internal transport sentinels so that
// errors.Is works on errors surfaced from any layer of the client.
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrMFARequired is returned when MFA is required
	ErrMFARequired = internalTypes.ErrMFARequired

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = internalTypes.ErrLoginFailed

	// ErrSessionExpired is returned when the session has expired
	ErrSessionExpired = internalTypes.ErrSessionExpired

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError
)

// Error represents an API error
type Error struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuthError checks if an error means the caller needs to (re)authenticate.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrMFARequired) ||
		errors.Is(err, ErrLoginFailed) ||
		errors.Is(err, ErrSessionExpired) {
		return true
	}

	var apiErr *internalTypes.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}

	return false
}

// IsNotFound checks if an error means the referenced entity does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	var apiErr *internalTypes.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}
