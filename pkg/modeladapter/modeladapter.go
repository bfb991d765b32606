package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrCompletionFailed is the only error class a Completer surfaces. Network
// failures, timeouts, non-2xx statuses and malformed bodies all wrap it.
var ErrCompletionFailed = errors.New("completion request failed")

// Completer sends a single prompt to an LLM and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ModelAdapter holds shared state for completion clients. Embed it in
// concrete provider structs to get the authenticated JSON POST helper.
type ModelAdapter struct {
	Name        string        // Model identifier (e.g. "openai/gpt-4o-mini").
	Temperature float64       // Sampling temperature.
	MaxTokens   int           // Maximum tokens in the response.
	APIKey      string        // Sent as a Bearer token; omitted when empty.
	Endpoint    string        // API URL requests are sent to.
	Timeout     time.Duration // Bound on a whole request (default: 60s).

	clientOnce sync.Once
	client     *http.Client
}

// httpClient returns the cached client bounded by Timeout.
func (a *ModelAdapter) httpClient() *http.Client {
	a.clientOnce.Do(func() {
		timeout := a.Timeout
		if timeout <= 0 {
			timeout = time.Minute
		}
		a.client = &http.Client{Timeout: timeout}
	})

	return a.client
}

// NewRequest builds an *http.Request for Endpoint with the Bearer
// Authorization header applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.Endpoint, body)
	if err != nil {
		return nil, err
	}

	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	return req, nil
}

// Do sends the request using the adapter's HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted Endpoint config, not user input.
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// PostJSON marshals payload as JSON, POSTs it to Endpoint, checks for a 2xx
// status, and unmarshals the response body into dest. If dest is nil the
// response body is discarded after the status check.
func (a *ModelAdapter) PostJSON(ctx context.Context, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Fail wraps cause in ErrCompletionFailed. A nil cause yields nil.
func Fail(cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrCompletionFailed) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrCompletionFailed, cause)
}
