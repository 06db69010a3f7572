package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/tessro/parrot/internal/errors"
)

// isolate points config discovery at an empty temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Player.Binary != "mpv" {
		t.Errorf("Player.Binary = %q, want mpv", cfg.Player.Binary)
	}
	if !cfg.Player.ShowOSD() {
		t.Error("ShowOSD() = false, want true")
	}
	if cfg.Playback.Interval() != 100*time.Millisecond {
		t.Errorf("Interval() = %v, want 100ms", cfg.Playback.Interval())
	}
	if cfg.Transcript.TimeoutDuration() != 120*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 120s", cfg.Transcript.TimeoutDuration())
	}
	if strings.Join(cfg.Transcript.Languages, ",") != "en,zh-TW,ja,zh-Hant,ko,zh" {
		t.Errorf("Languages = %v", cfg.Transcript.Languages)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := isolate(t)
	content := `
[player]
binary = "/opt/mpv/bin/mpv"
osd_subtitles = false
extra_args = ["--no-border"]

[playback]
progress_interval = 250

[tui]
theme = "light"
`
	if err := os.WriteFile(filepath.Join(home, ".parrotrc"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.Binary != "/opt/mpv/bin/mpv" {
		t.Errorf("Player.Binary = %q", cfg.Player.Binary)
	}
	if cfg.Player.ShowOSD() {
		t.Error("ShowOSD() = true, want false")
	}
	if cfg.Playback.ProgressInterval != 250 {
		t.Errorf("ProgressInterval = %d, want 250", cfg.Playback.ProgressInterval)
	}
	if cfg.TUI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.TUI.Theme)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", cfg.Log.Level)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PARROT_PLAYER_BINARY", "mpv-nightly")
	t.Setenv("PARROT_PLAYBACK_PROGRESS_INTERVAL", "50")
	t.Setenv("PARROT_TRANSCRIPT_LANGUAGES", "ja, ko")
	t.Setenv("PARROT_PLAYER_OSD_SUBTITLES", "false")
	t.Setenv("PARROT_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.Binary != "mpv-nightly" {
		t.Errorf("Player.Binary = %q", cfg.Player.Binary)
	}
	if cfg.Playback.ProgressInterval != 50 {
		t.Errorf("ProgressInterval = %d", cfg.Playback.ProgressInterval)
	}
	if strings.Join(cfg.Transcript.Languages, ",") != "ja,ko" {
		t.Errorf("Languages = %v", cfg.Transcript.Languages)
	}
	if cfg.Player.ShowOSD() {
		t.Error("ShowOSD() = true, want false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestDotEnv(t *testing.T) {
	home := isolate(t)
	t.Setenv("PARROT_TUI_THEME", "")
	if err := os.WriteFile(filepath.Join(home, ".env"), []byte("PARROT_TUI_THEME=dark\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PARROT_TUI_THEME") })
	os.Unsetenv("PARROT_TUI_THEME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TUI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark from .env", cfg.TUI.Theme)
	}
}

func TestLoadFromMissing(t *testing.T) {
	isolate(t)
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, apperrors.ErrConfigNotFound) {
		t.Errorf("LoadFrom() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[tui]\ntheme = \"neon\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFrom(path)
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("LoadFrom() error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui: invalid theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log: invalid log level"},
		{"short interval", func(c *Config) { c.Playback.ProgressInterval = 5 }, "playback: progress_interval"},
		{"bad url", func(c *Config) { c.Transcript.BaseURL = "ftp://example.com" }, "transcript: invalid base_url"},
		{"socket in args", func(c *Config) { c.Player.ExtraArgs = []string{"--input-ipc-server=/tmp/x"} }, "player: extra_args"},
		{"negative timeout", func(c *Config) { c.Player.StartTimeout = -1 }, "player: start_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestInitAndPath(t *testing.T) {
	home := isolate(t)

	want := filepath.Join(home, ".config", "parrot", "config.toml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	if err := Init(want, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(want, false); err == nil {
		t.Error("Init() should refuse to overwrite")
	}

	cfg, err := LoadFrom(want)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Player.Binary != "mpv" {
		t.Errorf("round trip Player.Binary = %q", cfg.Player.Binary)
	}
	if got := Path(); got != want {
		t.Errorf("Path() after init = %q, want %q", got, want)
	}
}
