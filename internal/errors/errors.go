package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrMalformedInput        = errors.New("malformed cue input")
	ErrUnsupportedFormat     = errors.New("unsupported subtitle format")
	ErrNoSubtitles           = errors.New("no subtitles loaded")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrInvalidVideoURL       = errors.New("invalid video url")
	ErrPlayerNotFound        = errors.New("media player not found")
	ErrPlayerClosed          = errors.New("media player closed")
	ErrNetworkError          = errors.New("network error")
	ErrTimeout               = errors.New("request timeout")
	ErrConfigNotFound        = errors.New("config file not found")
	ErrInvalidConfig         = errors.New("invalid configuration")
)

// ParrotError wraps an error with a user-friendly suggestion.
type ParrotError struct {
	Err        error
	Suggestion string
}

func (e *ParrotError) Error() string {
	return e.Err.Error()
}

func (e *ParrotError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ParrotError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var parrotErr *ParrotError
	if errors.As(err, &parrotErr) && parrotErr.Suggestion != "" {
		return parrotErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrMalformedInput):
		return "Check that every cue ends after it starts and cue numbers are sequential"
	case errors.Is(err, ErrUnsupportedFormat):
		return "Subtitle files must end in .srt or .vtt"
	case errors.Is(err, ErrNoSubtitles):
		return "Pass a subtitle file with --subs, or use --transcript for a network video"
	case errors.Is(err, ErrTranscriptUnavailable):
		return "The video has no captions in the configured languages. Try --lang or a local subtitle file"
	case errors.Is(err, ErrInvalidVideoURL):
		return "Use a full video URL such as https://www.youtube.com/watch?v=<id>"
	case errors.Is(err, ErrPlayerNotFound) || strings.Contains(errStr, "executable file not found"):
		return "Install mpv or set player.binary in ~/.parrotrc"
	case errors.Is(err, ErrPlayerClosed):
		return "The player window was closed. Run the command again"
	case errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused"):
		return "Check your internet connection and try again"
	case errors.Is(err, ErrConfigNotFound):
		return "Run 'parrot config init' to create a configuration file"
	case errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config"):
		return "Run 'parrot config show' to inspect the loaded configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
