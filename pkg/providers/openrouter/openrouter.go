// Package openrouter provides a Completer for OpenAI-compatible chat
// completion endpoints such as OpenRouter.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/germanamz/drsarcastic/pkg/modeladapter"
)

// ErrMalformedResponse reports a 2xx body that lacks choices[0].message.content.
var ErrMalformedResponse = errors.New("openrouter: malformed response")

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer. Each call sends exactly one
// POST carrying a single user message; no history is replayed.
type Adapter struct {
	modeladapter.ModelAdapter
}

// Options configures an Adapter.
type Options struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// New creates an Adapter. Endpoint is the full completions URL, for example
// "https://openrouter.ai/api/v1/chat/completions".
func New(opts Options) *Adapter {
	a := &Adapter{}
	a.Endpoint = opts.Endpoint
	a.APIKey = opts.APIKey
	a.Name = opts.Model
	a.Temperature = opts.Temperature
	a.MaxTokens = opts.MaxTokens
	a.Timeout = opts.Timeout

	return a
}

// Complete posts prompt as the content of a single user message and returns
// choices[0].message.content verbatim. Every failure wraps
// modeladapter.ErrCompletionFailed.
func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	var resp apiResponse
	if err := a.PostJSON(ctx, a.buildRequest(prompt), &resp); err != nil {
		return "", modeladapter.Fail(err)
	}

	text, err := resp.content()
	if err != nil {
		return "", modeladapter.Fail(err)
	}

	return text, nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
}

type apiChoice struct {
	Message *apiRespMessage `json:"message"`
}

type apiRespMessage struct {
	Content *string `json:"content"`
}

func (a *Adapter) buildRequest(prompt string) apiRequest {
	return apiRequest{
		Model:       a.Name,
		Messages:    []apiMessage{{Role: "user", Content: prompt}},
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
	}
}

// content validates the response shape and extracts the first choice.
func (r apiResponse) content() (string, error) {
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}
	m := r.Choices[0].Message
	if m == nil || m.Content == nil {
		return "", fmt.Errorf("%w: missing message content", ErrMalformedResponse)
	}
	return *m.Content, nil
}
