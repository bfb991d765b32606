package appdir

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preferences is the user state persisted across runs.
type Preferences struct {
	Language string `yaml:"language,omitempty"`
}

// LoadPreferences reads the preferences file of d. A missing file yields the
// zero value and no error.
func LoadPreferences(d Dir) (Preferences, error) {
	data, err := os.ReadFile(d.PreferencesPath())
	if errors.Is(err, os.ErrNotExist) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("appdir: read preferences: %w", err)
	}

	var p Preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("appdir: parse preferences: %w", err)
	}

	return p, nil
}

// SavePreferences writes p, creating the directory structure if needed. The
// file is replaced atomically.
func SavePreferences(d Dir, p Preferences) error {
	if err := EnsureStructure(d); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("appdir: marshal preferences: %w", err)
	}

	tmp := d.PreferencesPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("appdir: write preferences: %w", err)
	}

	if err := os.Rename(tmp, d.PreferencesPath()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("appdir: write preferences: %w", err)
	}

	return nil
}
