package auth

import (
	"fmt"
)

// AuthErrorKind classifies a failed token acquisition.
type AuthErrorKind int

const (
	// RequestFailed means no response was received from the token endpoint.
	RequestFailed AuthErrorKind = iota
	// RequestRejected means the token endpoint answered with a non-2xx status.
	RequestRejected
	// MalformedResponse means a 2xx body was not JSON or had no access_token.
	MalformedResponse
)

func (k AuthErrorKind) String() string {
	switch k {
	case RequestFailed:
		return "request failed"
	case RequestRejected:
		return "request rejected"
	case MalformedResponse:
		return "malformed response"
	default:
		return "unknown"
	}
}

// AuthError is returned by AcquireToken. Body holds the raw response body, unparsed.
type AuthError struct {
	Kind       AuthErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case RequestRejected:
		return fmt.Sprintf("token request rejected with status code %d: %s", e.StatusCode, e.Body)
	case MalformedResponse:
		return fmt.Sprintf("malformed token response: %v", e.Err)
	default:
		return fmt.Sprintf("token request failed: %v", e.Err)
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
