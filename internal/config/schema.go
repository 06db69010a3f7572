package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Player     PlayerConfig     `toml:"player"`
	Playback   PlaybackConfig   `toml:"playback"`
	Transcript TranscriptConfig `toml:"transcript"`
	TUI        TUIConfig        `toml:"tui"`
	Log        LogConfig        `toml:"log"`
}

// PlayerConfig holds media player settings.
type PlayerConfig struct {
	Binary       string   `toml:"binary"`
	Socket       string   `toml:"socket"`
	StartTimeout int      `toml:"start_timeout"` // milliseconds
	OSDSubtitles *bool    `toml:"osd_subtitles"`
	ExtraArgs    []string `toml:"extra_args"`
}

// StartTimeoutDuration returns the socket wait as a duration.
func (c PlayerConfig) StartTimeoutDuration() time.Duration {
	return time.Duration(c.StartTimeout) * time.Millisecond
}

// ShowOSD reports whether cue text is pushed to the player OSD.
func (c PlayerConfig) ShowOSD() bool {
	return c.OSDSubtitles == nil || *c.OSDSubtitles
}

// PlaybackConfig holds synchronizer settings.
type PlaybackConfig struct {
	ProgressInterval int  `toml:"progress_interval"` // milliseconds
	StartPaused      bool `toml:"start_paused"`
}

// Interval returns the progress polling interval.
func (c PlaybackConfig) Interval() time.Duration {
	return time.Duration(c.ProgressInterval) * time.Millisecond
}

// TranscriptConfig holds transcript backend settings.
type TranscriptConfig struct {
	Languages []string `toml:"languages"`
	BaseURL   string   `toml:"base_url"`
	Timeout   int      `toml:"timeout"` // seconds
}

// TimeoutDuration returns the fetch timeout.
func (c TranscriptConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
