package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tessro/parrot/internal/core"
)

// Write writes cues in the given format.
func Write(w io.Writer, cues []core.Cue, format Format) error {
	bw := bufio.NewWriter(w)

	var stamp func(time.Duration) string
	switch format {
	case FormatSRT:
		stamp = formatSRTTime
	case FormatVTT:
		stamp = formatVTTTime
		if _, err := bw.WriteString("WEBVTT\n\n"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	for i, c := range cues {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n", i+1, stamp(c.Start), stamp(c.End), c.Text); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes cues to path, choosing the format by extension.
func WriteFile(path string, cues []core.Cue) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create subtitle file: %w", err)
	}
	if err := Write(f, cues, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
