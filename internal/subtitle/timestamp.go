package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/tessro/parrot/internal/errors"
)

var timingRegex = regexp.MustCompile(
	`^\s*((?:\d+:)?\d{1,2}:\d{2}[,.]\d{1,3})\s*-->\s*((?:\d+:)?\d{1,2}:\d{2}[,.]\d{1,3})(?:\s+.*)?$`,
)

// parseTiming reads "start --> end" with optional trailing cue settings.
func parseTiming(line string, lineNum int) (time.Duration, time.Duration, error) {
	m := timingRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: invalid timing at line %d: %q", apperrors.ErrMalformedInput, lineNum, strings.TrimSpace(line))
	}

	start, err := parseTimestamp(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid start timestamp at line %d: %v", apperrors.ErrMalformedInput, lineNum, err)
	}
	end, err := parseTimestamp(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid end timestamp at line %d: %v", apperrors.ErrMalformedInput, lineNum, err)
	}
	return start, end, nil
}

// parseTimestamp reads [h:]mm:ss(,|.)mmm.
func parseTimestamp(ts string) (time.Duration, error) {
	ts = strings.Replace(ts, ",", ".", 1)

	clock, frac, ok := strings.Cut(ts, ".")
	if !ok {
		return 0, fmt.Errorf("missing milliseconds in %q", ts)
	}

	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("out of range timestamp %q", ts)
	}

	// "5" means 500ms, "05" means 50ms.
	for len(frac) < 3 {
		frac += "0"
	}
	ms, err := strconv.Atoi(frac)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

func formatSRTTime(d time.Duration) string {
	return formatTime(d, ',')
}

func formatVTTTime(d time.Duration) string {
	return formatTime(d, '.')
}

func formatTime(d time.Duration, sep rune) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, sep, millis)
}
