package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings shelf reads at startup.
type Config struct {
	APIBase     string
	SessionFile string
	LogFile     string
	LogLevel    string
	Language    string

	// RefreshInterval reloads both collections periodically; zero disables.
	RefreshInterval time.Duration
}

const (
	defaultConfigPath  = "~/.config/shelf/config.toml"
	defaultAPIBase     = "127.0.0.1:8005"
	defaultSessionFile = "~/.config/shelf/session.toml"
	defaultLogFile     = "~/.local/state/shelf/shelf.log"
	defaultLogLevel    = "info"
	defaultLanguage    = "en"

	// EnvAPIBase overrides api_base.
	EnvAPIBase = "SHELF_API_BASE"
	// EnvLanguage overrides language.
	EnvLanguage = "SHELF_LANGUAGE"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:     defaultAPIBase,
		SessionFile: mustExpand(defaultSessionFile),
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
		Language:    defaultLanguage,
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase     string `toml:"api_base"`
		SessionFile string `toml:"session_file"`
		LogFile     string `toml:"log_file"`
		LogLevel    string `toml:"log_level"`
		Language    string `toml:"language"`
		Refresh     string `toml:"refresh_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.SessionFile); v != "" {
		cfg.SessionFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Language); v != "" {
		cfg.Language = v
	}
	if v := strings.TrimSpace(raw.Refresh); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("parse config: invalid refresh_interval %q", v)
		}
		cfg.RefreshInterval = d
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		cfg.Language = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
