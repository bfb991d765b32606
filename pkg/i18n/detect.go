package i18n

import "strings"

// Normalize reduces a locale tag such as "fr_FR.UTF-8", "fr-CA" or "FR" to
// its primary language subtag. The POSIX "C" locale yields "".
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if i := strings.IndexAny(tag, "_-"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ToLower(tag)
	if tag == "c" || tag == "posix" {
		return ""
	}
	return tag
}

// Detect returns the first candidate whose normalized form the bundle
// supports, or Fallback. Callers pass candidates in priority order: stored
// preference, system locale, declared default.
func (b *Bundle) Detect(candidates ...string) string {
	for _, c := range candidates {
		if lang := Normalize(c); lang != "" && b.Has(lang) {
			return lang
		}
	}
	return Fallback
}

// SystemLocale returns the locale reported by the environment, honouring the
// POSIX precedence LC_ALL > LC_MESSAGES > LANG.
func SystemLocale(getenv func(string) string) string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return ""
}
