package engine

import (
	"context"
	"errors"
)

// Code is the closed set of failure classes exposed to clients.
type Code string

const (
	CodeUnavailable   Code = "engine_unavailable"
	CodeAuth          Code = "engine_auth"
	CodeRateLimited   Code = "engine_rate_limited"
	CodeInvalidOutput Code = "engine_invalid_output"
	CodeMisconfigured Code = "engine_misconfigured"
	CodeCanceled      Code = "engine_canceled"
	CodeFailed        Code = "engine_failed"
)

// GenerationError is any failure raised while the engine was working.
// Error() is the cause's text so it can be surfaced verbatim.
type GenerationError struct {
	Code Code
	Err  error
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Wrap turns err into a *GenerationError. A code found anywhere in the
// chain is kept, and Error() stays err.Error().
func Wrap(err error) *GenerationError {
	if err == nil {
		return nil
	}
	if ge, ok := err.(*GenerationError); ok {
		return ge
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return &GenerationError{Code: ge.Code, Err: err}
	}
	code := CodeFailed
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = CodeCanceled
	}
	return &GenerationError{Code: code, Err: err}
}
