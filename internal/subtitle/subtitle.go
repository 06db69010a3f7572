// Package subtitle reads SubRip and WebVTT files into cue stores.
package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
)

// Format is a subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// maxLineSize bounds a single subtitle line.
const maxLineSize = 1 << 20

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, ext)
	}
}

// Extension returns the file extension for a format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Open reads a subtitle file, choosing the parser by extension.
func Open(path string) (*core.Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	store, err := Parse(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return store, nil
}

// Parse reads subtitles in the given format. Cues are ordered by start time
// and numbered from 1.
func Parse(r io.Reader, format Format) (*core.Store, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}

	var cues []core.Cue
	switch format {
	case FormatSRT:
		cues, err = parseSRT(blocks)
	case FormatVTT:
		cues, err = parseVTT(blocks)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
	for i := range cues {
		cues[i].ID = i + 1
	}
	return core.Load(cues)
}

// block is a run of non-blank lines.
type block struct {
	line  int // 1-based number of the first line
	lines []string
}

func readBlocks(r io.Reader) ([]block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var blocks []block
	var current *block
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			current = &block{line: lineNum}
		}
		current.lines = append(current.lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitles: %w", err)
	}
	return blocks, nil
}

// timing finds the timing line in a block and returns its index.
func (b block) timing() int {
	for i, l := range b.lines {
		if strings.Contains(l, "-->") {
			return i
		}
	}
	return -1
}
