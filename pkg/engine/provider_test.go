package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/germanamz/drsarcastic/pkg/modeladapter"
	"github.com/germanamz/drsarcastic/pkg/providers/openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	return Config{
		Provider:    DefaultProvider,
		Endpoint:    endpoint,
		APIKey:      "sk-test",
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   64,
		Timeout:     time.Second,
	}
}

func TestBuildCompleter_OpenRouter(t *testing.T) {
	c, err := buildCompleter(testConfig("https://example.com/v1/chat/completions"))
	require.NoError(t, err)

	a, ok := c.(*openrouter.Adapter)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/v1/chat/completions", a.Endpoint)
	assert.Equal(t, "test-model", a.Name)
	assert.Equal(t, 64, a.MaxTokens)
	assert.Equal(t, "sk-test", a.APIKey)
	assert.Equal(t, time.Second, a.Timeout)
}

func TestBuildCompleter_EmptyKindUsesDefault(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.Provider = ""

	c, err := buildCompleter(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openrouter.Adapter{}, c)
}

func TestBuildCompleter_UnknownKind(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.Provider = "nope"

	_, err := buildCompleter(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider kind "nope"`)
}

func TestRegisterProvider_Custom(t *testing.T) {
	RegisterProvider("echo-test", func(_ Config) (modeladapter.Completer, error) {
		return modeladapter.CompleterFunc(func(_ context.Context, prompt string) (string, error) {
			return prompt, nil
		}), nil
	})

	cfg := testConfig("https://example.com")
	cfg.Provider = "echo-test"

	c, err := buildCompleter(cfg)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", text)
}

func TestRegisterProvider_FactoryError(t *testing.T) {
	RegisterProvider("broken-test", func(_ Config) (modeladapter.Completer, error) {
		return nil, errors.New("no credentials")
	})

	cfg := testConfig("https://example.com")
	cfg.Provider = "broken-test"

	_, err := buildCompleter(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `engine: provider "broken-test": no credentials`)
}

func TestBuildCompleter_OpenRouterRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "sure, genius"}}},
		})
	}))
	defer srv.Close()

	c, err := buildCompleter(testConfig(srv.URL))
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "sure, genius", text)
}
