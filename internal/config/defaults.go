package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	osd := true
	return &Config{
		Player: PlayerConfig{
			Binary:       "mpv",
			StartTimeout: 5000,
			OSDSubtitles: &osd,
		},
		Playback: PlaybackConfig{
			ProgressInterval: 100,
		},
		Transcript: TranscriptConfig{
			Languages: []string{"en", "zh-TW", "ja", "zh-Hant", "ko", "zh"},
			BaseURL:   "https://www.youtube.com/api/timedtext",
			Timeout:   120,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}
	if c.Player.StartTimeout == 0 {
		c.Player.StartTimeout = d.Player.StartTimeout
	}
	if c.Player.OSDSubtitles == nil {
		c.Player.OSDSubtitles = d.Player.OSDSubtitles
	}

	// Playback
	if c.Playback.ProgressInterval == 0 {
		c.Playback.ProgressInterval = d.Playback.ProgressInterval
	}

	// Transcript
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = d.Transcript.Languages
	}
	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = d.Transcript.BaseURL
	}
	if c.Transcript.Timeout == 0 {
		c.Transcript.Timeout = d.Transcript.Timeout
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
