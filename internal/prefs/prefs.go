// Package prefs remembers UI choices between runs: the colour theme and the
// page that was open on exit. Stored as TOML in ~/.config/shelf/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPrefsPath = "~/.config/shelf/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Prefs holds UI preferences.
type Prefs struct {
	Theme    string `toml:"theme"`
	LastPath string `toml:"last_path,omitempty"`
}

// DefaultPath returns the default preferences file path (unexpanded).
func DefaultPath() string {
	return defaultPrefsPath
}

// normalized fills in the default theme and drops a LastPath that is not
// an absolute route.
func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastPath = strings.TrimSpace(p.LastPath)
	if !strings.HasPrefix(p.LastPath, "/") {
		p.LastPath = ""
	}
	return p
}

// Load reads preferences from path (empty means DefaultPath). A missing file
// yields defaults and no error. Any other failure still yields defaults,
// with the error returned for logging.
func Load(path string) (Prefs, error) {
	defaults := Prefs{}.normalized()

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return defaults, nil
	case err != nil:
		return defaults, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults, fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalized(), nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
