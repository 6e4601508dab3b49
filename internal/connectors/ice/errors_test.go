package ice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404, Message: "gone"}))
	assert.False(t, IsNotFound(&APIError{StatusCode: 500}))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))

	wrapped := fmt.Errorf("fetch entry: %w", &APIError{StatusCode: 404})
	assert.True(t, IsNotFound(wrapped))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: 404}))
}

func TestIsNetwork(t *testing.T) {
	netErr := &NetworkError{URL: "http://ice.example", Err: errors.New("connection refused")}
	assert.True(t, IsNetwork(netErr))
	assert.True(t, IsNetwork(fmt.Errorf("login: %w", netErr)))
	assert.False(t, IsNetwork(&APIError{StatusCode: 503}))
}

func TestAuthError(t *testing.T) {
	primary := &NetworkError{URL: "http://ice.example/rest/accesstoken", Err: errors.New("refused")}
	fallback := &NetworkError{URL: "http://ice.example/rest/accesstokens", Err: errors.New("refused")}

	err := &AuthError{Primary: primary, Fallback: fallback}
	assert.True(t, IsAuth(err))
	assert.Contains(t, err.Error(), "fallback")
	assert.ErrorIs(t, err, primary)

	// Without a fallback attempt the message stays short.
	short := &AuthError{Primary: &APIError{StatusCode: 401, Message: "bad credentials"}}
	assert.True(t, IsAuth(short))
	assert.NotContains(t, short.Error(), "fallback")
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &NetworkError{URL: "http://ice.example", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "http://ice.example")
}
