package engine

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvEndpoint    = "OPENROUTER_API_URL"
	EnvAPIKey      = "OPENROUTER_API_KEY" //nolint:gosec // variable name, not a secret
	EnvModel       = "AI_MODEL"
	EnvTemperature = "AI_TEMPERATURE"
	EnvMaxTokens   = "AI_MAX_TOKENS"
	EnvTimeout     = "AI_TIMEOUT"
	EnvProvider    = "AI_PROVIDER"
	EnvDir         = "DRSARCASTIC_DIR"
	EnvLanguage    = "DRSARCASTIC_LANG"
	EnvLogLevel    = "DRSARCASTIC_LOG_LEVEL"
)

// maxTimeoutMillis is the largest AI_TIMEOUT that fits in a time.Duration.
const maxTimeoutMillis = math.MaxInt64 / int64(time.Millisecond)

// DefaultProvider is the provider kind used when AI_PROVIDER is unset.
const DefaultProvider = "openrouter"

// Config is the request configuration plus the few ambient settings of the
// app. It is loaded once at startup and treated as immutable.
type Config struct {
	Provider    string
	Endpoint    string
	APIKey      string //nolint:gosec // configuration field, not a hardcoded secret
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Dir         string // App directory; empty means appdir.DefaultName.
	Language    string // Declared default language, consulted after the system locale.
	LogLevel    string
}

// LoadConfig reads the configuration from getenv (usually os.Getenv after a
// .env file was loaded). All request settings are required; missing or
// malformed values are reported together and nothing is defaulted.
func LoadConfig(getenv func(string) string) (Config, error) {
	var errs []error

	required := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
		return v
	}

	cfg := Config{
		Provider: strings.TrimSpace(getenv(EnvProvider)),
		Endpoint: required(EnvEndpoint),
		APIKey:   required(EnvAPIKey),
		Model:    required(EnvModel),
		Dir:      strings.TrimSpace(getenv(EnvDir)),
		Language: strings.TrimSpace(getenv(EnvLanguage)),
		LogLevel: strings.TrimSpace(getenv(EnvLogLevel)),
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}

	if v := required(EnvTemperature); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", EnvTemperature, v))
		}
		cfg.Temperature = t
	}

	if v := required(EnvMaxTokens); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not an integer", EnvMaxTokens, v))
		}
		cfg.MaxTokens = n
	}

	if v := required(EnvTimeout); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %q is not an integer number of milliseconds", EnvTimeout, v))
		case ms > maxTimeoutMillis:
			errs = append(errs, fmt.Errorf("%s: %q is too large", EnvTimeout, v))
		default:
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("engine: config: %w", errors.Join(errs...))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the values are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("engine: config: %s must be an http(s) URL, got %q", EnvEndpoint, c.Endpoint)
	}
	if c.APIKey == "" {
		return fmt.Errorf("engine: config: %s is required", EnvAPIKey)
	}
	if c.Model == "" {
		return fmt.Errorf("engine: config: %s is required", EnvModel)
	}
	if math.IsNaN(c.Temperature) || c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("engine: config: %s must be within [0, 2], got %v", EnvTemperature, c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("engine: config: %s must be positive, got %d", EnvMaxTokens, c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("engine: config: %s must be positive, got %s", EnvTimeout, c.Timeout)
	}

	return nil
}
