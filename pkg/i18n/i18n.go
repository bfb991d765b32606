// Package i18n is the process-wide localization service. Translations are
// embedded YAML files, one per language, parsed once on first use and
// read-only afterwards. Nested YAML maps are flattened into dot-separated keys
// ("quickActions.terribleDay").
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Fallback is the language used when a requested language or key is missing.
const Fallback = "en"

// Translation keys.
const (
	KeyTitle          = "title"
	KeySubtitle       = "subtitle"
	KeySessions       = "sessions"
	KeyPlaceholder    = "placeholder"
	KeyFooter         = "footer"
	KeyTyping         = "typing"
	KeyErrorMessage   = "errorMessage"
	KeySystemPrompt   = "systemPrompt"
	KeyInitialMessage = "initialMessage"
	KeyYou            = "you"
	KeyHelp           = "help"
)

// QuickActionKeys lists the quick-action prompts in display order.
var QuickActionKeys = []string{
	"quickActions.terribleDay",
	"quickActions.brutalHonesty",
	"quickActions.workCrazy",
	"quickActions.overthinking",
}

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the bundle built from the embedded locales. It panics if the
// embedded files are malformed, which is a build defect.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := Load(localeFS, "locales")
		if err != nil {
			panic(err)
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Bundle holds flattened translations keyed by language. It is safe for
// concurrent reads.
type Bundle struct {
	langs map[string]map[string]string
}

// Load reads every *.yaml file under dir in fsys. The file name without
// extension is the language code.
func Load(fsys fs.FS, dir string) (*Bundle, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("i18n: list locales: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("i18n: no locales in %q", dir)
	}

	b := &Bundle{langs: make(map[string]map[string]string, len(matches))}
	for _, m := range matches {
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", m, err)
		}

		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", m, err)
		}

		flat := make(map[string]string)
		flatten("", raw, flat)

		lang := strings.TrimSuffix(path.Base(m), path.Ext(m))
		b.langs[lang] = flat
	}

	if _, ok := b.langs[Fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback language %q missing", Fallback)
	}

	return b, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T returns the translation of key in lang, falling back to the Fallback
// language and finally to the key itself.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.langs[lang][key]; ok {
		return v
	}
	if v, ok := b.langs[Fallback][key]; ok {
		return v
	}
	return key
}

// Has reports whether lang has a translation table.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.langs[lang]
	return ok
}

// Languages returns the sorted language codes in the bundle.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.langs))
	for l := range b.langs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Next returns the language after lang in sorted order, wrapping around.
func (b *Bundle) Next(lang string) string {
	langs := b.Languages()
	for i, l := range langs {
		if l == lang {
			return langs[(i+1)%len(langs)]
		}
	}
	return Fallback
}
