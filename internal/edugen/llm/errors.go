package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a provider is built without a key.
var ErrMissingCredential = errors.New("LLM API key is not configured")

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown LLM provider")

// ErrAuth indicates the provider rejected the credential (401/403).
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string { return fmt.Sprintf("LLM provider rejected credentials: %v", e.Err) }
func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrRateLimit indicates a 429 from the provider.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string { return fmt.Sprintf("LLM provider rate limited: %v", e.Err) }
func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates output that is not valid JSON or does not
// match the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("invalid LLM response: %v", e.Err) }
func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected is any other 4xx: the provider refused the request as
// sent. 404 usually means an unknown model or a wrong base URL.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("LLM provider rejected request (status %d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// NotFound reports a 404.
func (e *ErrRequestRejected) NotFound() bool { return e.Status == 404 }

// mapStatus classifies an upstream HTTP status into one of the typed errors.
func mapStatus(status int, err error) error {
	switch {
	case status == 401 || status == 403:
		return &ErrAuth{Err: err}
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status >= 400 && status < 500:
		return &ErrRequestRejected{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
