package main

import (
	"testing"

	"github.com/germanamz/drsarcastic/pkg/appdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLanguage(t *testing.T) {
	d := appdir.New(t.TempDir())

	require.NoError(t, runLanguage(d, "fr_CA.UTF-8"))

	prefs, err := appdir.LoadPreferences(d)
	require.NoError(t, err)
	assert.Equal(t, "fr", prefs.Language)
}

func TestRunLanguage_Unsupported(t *testing.T) {
	d := appdir.New(t.TempDir())

	err := runLanguage(d, "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported language "klingon"`)
	assert.Contains(t, err.Error(), "en, fr")
	assert.NoFileExists(t, d.PreferencesPath())
}

func TestLanguageLabel(t *testing.T) {
	assert.Equal(t, "English (en)", languageLabel("en"))
	assert.Equal(t, "Français (fr)", languageLabel("fr"))
	assert.Equal(t, "xx", languageLabel("xx"))
}
