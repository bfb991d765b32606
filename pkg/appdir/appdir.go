// Package appdir encapsulates all path knowledge for the .drsarcastic/
// directory: the gitignored local/ state directory, the persisted preferences
// and the log file.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the directory used when none is configured.
const DefaultName = ".drsarcastic"

const gitignoreContent = "local/\n"

// Dir is a value object that resolves paths within the app directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory layout.
func New(root string) Dir {
	if root == "" {
		root = DefaultName
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the app directory.
func (d Dir) Root() string { return d.root }

// LocalDir returns the path to the local (gitignored) runtime state directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// PreferencesPath returns the path to the persisted user preferences.
func (d Dir) PreferencesPath() string { return filepath.Join(d.root, "local", "preferences.yaml") }

// LogPath returns the path to the log file.
func (d Dir) LogPath() string { return filepath.Join(d.root, "local", "drsarcastic.log") }

// GitignorePath returns the path to the .gitignore file inside the app directory.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// EnsureStructure creates the root, the local/ directory and the .gitignore
// file if they are missing. It is safe to call multiple times.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("appdir: create local dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("appdir: gitignore: %w", err)
	}

	return nil
}

// ensureGitignore creates the .gitignore file if it does not exist.
func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}
