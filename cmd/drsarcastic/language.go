package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/drsarcastic/pkg/appdir"
	"github.com/germanamz/drsarcastic/pkg/i18n"
)

// languageNames are the endonyms shown in the picker.
var languageNames = map[string]string{
	"en": "English",
	"fr": "Français",
}

// runLanguage stores the preferred language. With an empty arg it asks
// through an interactive picker.
func runLanguage(d appdir.Dir, arg string) error {
	bundle := i18n.Default()

	prefs, err := appdir.LoadPreferences(d)
	if err != nil {
		return err
	}

	lang := i18n.Normalize(arg)
	if arg == "" {
		lang, err = pickLanguage(bundle, prefs.Language)
		if err != nil {
			return err
		}
	}

	if !bundle.Has(lang) {
		return fmt.Errorf("unsupported language %q (available: %s)", arg, strings.Join(bundle.Languages(), ", "))
	}

	prefs.Language = lang
	if err := appdir.SavePreferences(d, prefs); err != nil {
		return err
	}

	fmt.Printf("Language set to %s\n", languageLabel(lang))

	return nil
}

func pickLanguage(bundle *i18n.Bundle, current string) (string, error) {
	selected := bundle.Detect(current)

	opts := make([]huh.Option[string], 0, len(bundle.Languages()))
	for _, l := range bundle.Languages() {
		opts = append(opts, huh.NewOption(languageLabel(l), l))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(bundle.T(selected, i18n.KeyTitle)).
				Description("Language / Langue").
				Options(opts...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

func languageLabel(lang string) string {
	if name, ok := languageNames[lang]; ok {
		return name + " (" + lang + ")"
	}
	return lang
}
