// Package client calls a running edugen server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
)

const defaultMaxResponseBytes = 8 << 20

// ErrResponseTooLarge is returned when a response body exceeds
// Options.MaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body too large")

type Options struct {
	BaseURL string

	// Timeout bounds each call. Zero means 2 minutes; negative disables it.
	Timeout time.Duration

	HTTPClient *http.Client

	// MaxResponseBytes caps a response body. Zero means 8 MiB.
	MaxResponseBytes int64
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	maxBody    int64
	httpClient *http.Client
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	maxBody := opts.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = defaultMaxResponseBytes
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: baseURL, timeout: timeout, maxBody: maxBody, httpClient: hc}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// GenerateMCQ posts req to /generate-mcq and returns the body unchanged.
func (c *Client) GenerateMCQ(ctx context.Context, req contract.MCQRequest) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/generate-mcq", req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *Client) GenerateLessonPlan(ctx context.Context, req contract.LessonPlanRequest) (*contract.NCERTLessonPlan, error) {
	raw, err := c.do(ctx, http.MethodPost, "/generate-lesson-plan", req)
	if err != nil {
		return nil, err
	}
	var plan contract.NCERTLessonPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("decode lesson plan: %w", err)
	}
	return &plan, nil
}

// Ping checks GET / answers with the running message.
func (c *Client) Ping(ctx context.Context) error {
	raw, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode ping: %w", err)
	}
	if out.Message == "" {
		return errors.New("unexpected ping response")
	}
	return nil
}

// do sends one request. Generation is not idempotent, so nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > c.maxBody {
		return nil, fmt.Errorf("%s %s: status %d: %w (limit %d bytes)", method, path, resp.StatusCode, ErrResponseTooLarge, c.maxBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseHTTPError(resp.StatusCode, resp.Header.Get("X-Request-Id"), raw)
	}
	return raw, nil
}
