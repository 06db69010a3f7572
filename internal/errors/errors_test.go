package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"malformed", fmt.Errorf("load: %w", ErrMalformedInput), "sequential"},
		{"format", ErrUnsupportedFormat, ".srt or .vtt"},
		{"transcript", ErrTranscriptUnavailable, "--lang"},
		{"player", errors.New(`exec: "mpv": executable file not found in $PATH`), "Install mpv"},
		{"network", errors.New("dial tcp: connection refused"), "internet connection"},
		{"custom", WithSuggestion(errors.New("boom"), "do the thing"), "do the thing"},
		{"unknown", errors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(ErrNoSubtitles)
	if !strings.HasPrefix(got, "Error: no subtitles loaded") {
		t.Errorf("Format() = %q, missing error text", got)
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, missing suggestion", got)
	}

	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestParrotErrorUnwrap(t *testing.T) {
	err := WithSuggestion(ErrTimeout, "wait")
	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is(err, ErrTimeout) = false, want true")
	}
}
