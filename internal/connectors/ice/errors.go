package ice

import (
	"errors"
	"fmt"
	"net/http"
)

// Registry-specific errors.
var (
	// ErrNoRecordID indicates a sequence upload was attempted for an
	// entry the registry has not assigned a record id to.
	ErrNoRecordID = errors.New("ice: entry has no record id")

	// ErrEmptyResponse indicates the registry returned no usable body.
	ErrEmptyResponse = errors.New("ice: empty response from registry")
)

// NetworkError represents a transport-level failure: connection refused,
// DNS failure, broken pipe. It is distinct from an HTTP error status,
// which arrives as an APIError.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ice: network failure for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError represents an HTTP error status returned by the registry.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ice: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// AuthError indicates login failed. Fallback is nil when the secondary
// endpoint was never tried (the primary failed at the HTTP level rather
// than the transport level).
type AuthError struct {
	Primary  error
	Fallback error
}

func (e *AuthError) Error() string {
	if e.Fallback != nil {
		return fmt.Sprintf("ice: authentication failed: %v (fallback: %v)", e.Primary, e.Fallback)
	}
	return fmt.Sprintf("ice: authentication failed: %v", e.Primary)
}

func (e *AuthError) Unwrap() error {
	return e.Primary
}

// IsNotFound checks if the error indicates the entry does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates a rejected session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNetwork checks if the error is a transport-level failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsAuth checks if the error is a login failure.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
