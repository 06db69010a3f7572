package subtitle

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
)

var tagRegex = regexp.MustCompile(`<[^>]*>|\{\\[^}]*\}`)

func stripTags(s string) string {
	return html.UnescapeString(tagRegex.ReplaceAllString(s, ""))
}

// parseVTT reads WebVTT blocks. The first block must start with the WEBVTT
// header; NOTE, STYLE and REGION blocks are ignored.
func parseVTT(blocks []block) ([]core.Cue, error) {
	if len(blocks) == 0 || !strings.HasPrefix(blocks[0].lines[0], "WEBVTT") {
		return nil, fmt.Errorf("%w: missing WEBVTT header", apperrors.ErrMalformedInput)
	}

	var cues []core.Cue

	for _, b := range blocks[1:] {
		switch firstWord(b.lines[0]) {
		case "NOTE", "STYLE", "REGION":
			continue
		}

		idx := b.timing()
		if idx < 0 {
			continue
		}
		// At most one identifier line precedes the timing.
		if idx > 1 {
			return nil, fmt.Errorf("%w: unexpected text before timing at line %d", apperrors.ErrMalformedInput, b.line)
		}

		start, end, err := parseTiming(b.lines[idx], b.line+idx)
		if err != nil {
			return nil, err
		}

		text := cleanText(b.lines[idx+1:])
		if text == "" {
			continue
		}

		cues = append(cues, core.Cue{Start: start, End: end, Text: text})
	}

	return cues, nil
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
