package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/shelf/session.toml"

// DefaultPath returns the default session file path (unexpanded).
func DefaultPath() string {
	return defaultSessionPath
}

type slot struct {
	Token string `toml:"token"`
}

// Store persists the API token in a single TOML file. It survives restarts
// and is safe for concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store backed by path. An empty path uses DefaultPath.
func New(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	return &Store{path: resolved}, nil
}

// Path returns the resolved file location.
func (s *Store) Path() string {
	return s.path
}

// Read returns the persisted token, or "" when nothing was stored yet.
func (s *Store) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	var stored slot
	if err := toml.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("parse session: %w", err)
	}
	return stored.Token, nil
}

// Write replaces the persisted token. An empty token is stored as-is and
// reads back as unauthenticated.
func (s *Store) Write(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(slot{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// Replace via a sibling temp file and rename.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.toml")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
