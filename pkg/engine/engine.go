package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/germanamz/drsarcastic/pkg/appdir"
	"github.com/germanamz/drsarcastic/pkg/i18n"
	"github.com/germanamz/drsarcastic/pkg/modeladapter"
)

// Engine is the composition root that assembles the completer, translations,
// and preferences store from configuration and hands out sessions.
type Engine struct {
	cfg       Config
	events    *EventBus
	completer modeladapter.Completer
	bundle    *i18n.Bundle
	dir       appdir.Dir
	log       *slog.Logger

	mu     sync.Mutex
	nextID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and its completer.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithBundle replaces the embedded translation bundle.
func WithBundle(b *i18n.Bundle) Option {
	return func(e *Engine) { e.bundle = b }
}

// WithCompleter bypasses the provider registry and uses c directly.
func WithCompleter(c modeladapter.Completer) Option {
	return func(e *Engine) { e.completer = c }
}

// New creates an Engine from the given configuration. It validates the config
// and builds the completer for the configured provider.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		events: NewEventBus(),
		dir:    appdir.New(cfg.Dir),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = slog.Default()
	}
	if e.bundle == nil {
		e.bundle = i18n.Default()
	}

	if e.completer == nil {
		c, err := buildCompleter(cfg)
		if err != nil {
			return nil, err
		}
		e.completer = c
	}

	e.completer = modeladapter.Chain(e.completer,
		modeladapter.Recovery(),
		modeladapter.Logger(e.log, cfg.Model),
	)

	return e, nil
}

// Events returns the engine's event bus.
func (e *Engine) Events() *EventBus { return e.events }

// Bundle returns the translation bundle.
func (e *Engine) Bundle() *i18n.Bundle { return e.bundle }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.log }

// Dir returns the app directory.
func (e *Engine) Dir() appdir.Dir { return e.dir }

// DetectLanguage picks the initial language: the stored preference, then the
// system locale read through getenv, then the configured language, then
// i18n.Fallback. A language detected without a usable stored preference is
// saved so later runs start from it. An unreadable preferences file is logged
// and skipped, and left untouched.
func (e *Engine) DetectLanguage(getenv func(string) string) string {
	prefs, err := appdir.LoadPreferences(e.dir)
	if err != nil {
		e.log.Warn("ignoring preferences", "path", e.dir.PreferencesPath(), "error", err)
	}

	lang := e.bundle.Detect(prefs.Language, i18n.SystemLocale(getenv), e.cfg.Language)

	if err == nil && prefs.Language != lang {
		prefs.Language = lang
		if err := appdir.SavePreferences(e.dir, prefs); err != nil {
			e.log.Warn("caching detected language", "path", e.dir.PreferencesPath(), "error", err)
		}
	}

	return lang
}

// SaveLanguage persists lang as the preferred language.
func (e *Engine) SaveLanguage(lang string) error {
	if !e.bundle.Has(lang) {
		return fmt.Errorf("engine: unsupported language %q", lang)
	}

	prefs, err := appdir.LoadPreferences(e.dir)
	if err != nil {
		e.log.Warn("overwriting unreadable preferences", "path", e.dir.PreferencesPath(), "error", err)
	}
	prefs.Language = lang

	return appdir.SavePreferences(e.dir, prefs)
}

// NewSession creates a conversation in lang, greeted in that language. An
// unsupported lang falls back to i18n.Fallback.
func (e *Engine) NewSession(lang string) *Session {
	if !e.bundle.Has(lang) {
		lang = i18n.Fallback
	}

	e.mu.Lock()
	e.nextID++
	id := fmt.Sprintf("session-%d", e.nextID)
	e.mu.Unlock()

	return newSession(sessionDeps{
		id:        id,
		lang:      lang,
		completer: e.completer,
		bundle:    e.bundle,
		events:    e.events,
		persist:   e.SaveLanguage,
		log:       e.log.With("session", id),
	})
}
