package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.Transcript.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("transcript: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if c.StartTimeout < 0 {
		return errors.New("start_timeout must be non-negative")
	}
	for _, a := range c.ExtraArgs {
		if strings.HasPrefix(a, "--input-ipc-server") {
			return errors.New("extra_args must not set --input-ipc-server; use socket")
		}
	}
	return nil
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.ProgressInterval < 0 {
		return errors.New("progress_interval must be non-negative")
	}
	if c.ProgressInterval > 0 && c.ProgressInterval < 10 {
		return fmt.Errorf("progress_interval %dms is too short (minimum 10)", c.ProgressInterval)
	}
	return nil
}

// Validate checks TranscriptConfig for errors.
func (c *TranscriptConfig) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base_url: %s (must be http or https)", c.BaseURL)
		}
	}
	for _, l := range c.Languages {
		if strings.TrimSpace(l) == "" {
			return errors.New("languages must not contain empty entries")
		}
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
