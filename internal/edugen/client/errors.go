package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
)

// HTTPError is a non-2xx answer from the server. Validation failures carry
// Details; other errors carry Message and, for generation failures, Code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
	Details    []contract.Detail
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" && len(e.Details) > 0 {
		msg = (&contract.ValidationError{Details: e.Details}).Error()
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("http error: status=%d code=%s message=%s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, msg)
}

// parseHTTPError understands both {"detail": "..."} and
// {"detail": [{loc,msg,type}, ...]} bodies.
func parseHTTPError(status int, requestID string, raw []byte) error {
	herr := &HTTPError{
		StatusCode: status,
		RequestID:  strings.TrimSpace(requestID),
		Body:       strings.TrimSpace(string(raw)),
	}

	var env struct {
		Detail    json.RawMessage `json:"detail"`
		Code      string          `json:"code"`
		RequestID string          `json:"request_id"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return herr
	}
	herr.Code = env.Code
	if env.RequestID != "" {
		herr.RequestID = env.RequestID
	}

	var msg string
	if err := json.Unmarshal(env.Detail, &msg); err == nil {
		herr.Message = msg
		return herr
	}
	var details []contract.Detail
	if err := json.Unmarshal(env.Detail, &details); err == nil {
		herr.Details = details
	}
	return herr
}
