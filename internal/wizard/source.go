package wizard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/subtitle"
)

// Source kinds offered by the form.
const (
	KindLocal   = "local"
	KindNetwork = "network"
)

// Selection is the result of the source form.
type Selection struct {
	Kind      string
	Location  string
	Subtitles string
}

// Source resolves the selected media source.
func (s Selection) Source() (core.MediaSource, error) {
	switch s.Kind {
	case KindLocal:
		return core.LocalSource(s.Location)
	case KindNetwork:
		return core.NetworkSource(s.Location)
	default:
		return core.NoSource(), fmt.Errorf("unknown source kind %q", s.Kind)
	}
}

// ValidateLocation checks a location for the given source kind.
func ValidateLocation(kind, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("location is required")
	}
	switch kind {
	case KindLocal:
		info, err := os.Stat(location)
		if err != nil {
			return fmt.Errorf("cannot open %s", location)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", location)
		}
		return nil
	case KindNetwork:
		_, err := core.NetworkSource(location)
		return err
	default:
		return fmt.Errorf("unknown source kind %q", kind)
	}
}

// ValidateSubtitles checks the optional subtitle path.
func ValidateSubtitles(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := subtitle.FormatFromPath(path); err != nil {
		return fmt.Errorf("unsupported subtitle file %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s", path)
	}
	return nil
}

// RunSource shows the source form. Returns nil if the user cancels.
func RunSource() (*Selection, error) {
	sel := Selection{Kind: KindLocal}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to watch?").
				Options(
					huh.NewOption("Local file", KindLocal),
					huh.NewOption("Network URL", KindNetwork),
				).
				Value(&sel.Kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Description("Path to a video file, or an http(s) URL").
				Value(&sel.Location).
				Validate(func(s string) error {
					return ValidateLocation(sel.Kind, s)
				}),
			huh.NewInput().
				Title("Subtitle file").
				Description("Optional .srt or .vtt file; leave empty to skip").
				Value(&sel.Subtitles).
				Validate(ValidateSubtitles),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("source form: %w", err)
	}

	sel.Location = strings.TrimSpace(sel.Location)
	sel.Subtitles = strings.TrimSpace(sel.Subtitles)
	return &sel, nil
}
