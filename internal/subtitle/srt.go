package subtitle

import (
	"strings"

	"github.com/tessro/parrot/internal/core"
)

// parseSRT reads SubRip blocks: an optional index line, a timing line and
// one or more text lines. Blocks without a timing line are skipped.
func parseSRT(blocks []block) ([]core.Cue, error) {
	var cues []core.Cue

	for _, b := range blocks {
		idx := b.timing()
		if idx < 0 {
			continue
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

// cleanText joins text lines and strips markup tags.
func cleanText(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(stripTags(l))
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
