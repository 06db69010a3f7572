// Package config loads parrot settings from TOML files, .env files and
// PARROT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	apperrors "github.com/tessro/parrot/internal/errors"
)

// EnvFile is loaded from the working directory before env overrides.
const EnvFile = ".env"

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.parrotrc, $XDG_CONFIG_HOME/parrot/config.toml, ~/.config/parrot/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidConfig, path, err)
		}
	}

	return finish(cfg)
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidConfig, path, err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	// Apply defaults, then .env and environment variable overrides
	cfg.ApplyDefaults()
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// loadEnvFile loads variables from path without overriding the real
// environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidConfig, path, err)
	}
	return nil
}

// Path returns the config file in use, or the preferred location when none
// exists yet.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	paths := searchPaths()
	if len(paths) == 0 {
		return ""
	}
	return paths[len(paths)-1]
}

// Init writes a default config file to path. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := Encode(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".parrotrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "parrot", "config.toml"))
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("PARROT_PLAYER_BINARY"); v != "" {
		cfg.Player.Binary = v
	}
	if v := os.Getenv("PARROT_PLAYER_SOCKET"); v != "" {
		cfg.Player.Socket = v
	}
	if v := os.Getenv("PARROT_PLAYER_START_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.StartTimeout = i
		}
	}
	if v := os.Getenv("PARROT_PLAYER_OSD_SUBTITLES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Player.OSDSubtitles = &b
		}
	}

	// Playback
	if v := os.Getenv("PARROT_PLAYBACK_PROGRESS_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.ProgressInterval = i
		}
	}
	if v := os.Getenv("PARROT_PLAYBACK_START_PAUSED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Playback.StartPaused = b
		}
	}

	// Transcript
	if v := os.Getenv("PARROT_TRANSCRIPT_LANGUAGES"); v != "" {
		cfg.Transcript.Languages = splitList(v)
	}
	if v := os.Getenv("PARROT_TRANSCRIPT_BASE_URL"); v != "" {
		cfg.Transcript.BaseURL = v
	}
	if v := os.Getenv("PARROT_TRANSCRIPT_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Transcript.Timeout = i
		}
	}

	// TUI
	if v := os.Getenv("PARROT_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("PARROT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PARROT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
