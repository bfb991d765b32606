package engine

import (
	"fmt"
	"sync"

	"github.com/germanamz/drsarcastic/pkg/modeladapter"
	"github.com/germanamz/drsarcastic/pkg/providers/openrouter"
)

// ProviderFactory creates a Completer from the engine configuration.
type ProviderFactory func(cfg Config) (modeladapter.Completer, error)

var (
	factoryMu   sync.RWMutex
	factories   = map[string]ProviderFactory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories["openrouter"] = newOpenRouter
	})
}

// RegisterProvider registers a custom provider factory under the given kind.
// It can be called before New to extend the engine with additional providers.
func RegisterProvider(kind string, factory ProviderFactory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

// getFactory returns the factory for the given kind.
func getFactory(kind string) (ProviderFactory, bool) {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factories[kind]
	return f, ok
}

func newOpenRouter(cfg Config) (modeladapter.Completer, error) {
	return openrouter.New(openrouter.Options{
		Endpoint:    cfg.Endpoint,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}), nil
}

// buildCompleter creates a Completer using the registered factory for the
// configured provider kind.
func buildCompleter(cfg Config) (modeladapter.Completer, error) {
	kind := cfg.Provider
	if kind == "" {
		kind = DefaultProvider
	}

	factory, ok := getFactory(kind)
	if !ok {
		return nil, fmt.Errorf("engine: unknown provider kind %q", kind)
	}

	c, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: provider %q: %w", kind, err)
	}

	return c, nil
}
