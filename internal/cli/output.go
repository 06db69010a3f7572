package cli

import (
	"encoding/json"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tessro/parrot/internal/core"
)

// Table provides a simple table formatter.
type Table struct {
	w       *tabwriter.Writer
	headers []string
}

// NewTable creates a table writing to out with the given headers.
func NewTable(out io.Writer, headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TruncateString truncates s to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCount formats a cue count, e.g. "1,204 cues".
func FormatCount(n int) string {
	if n == 1 {
		return "1 cue"
	}
	return humanize.Comma(int64(n)) + " cues"
}

// FormatSpan formats the time covered by the cues in a store.
func FormatSpan(store *core.Store) string {
	first, ok := store.First()
	if !ok {
		return "0:00"
	}
	last, _ := store.Last()
	return core.FormatOffset(first.Start) + " - " + core.FormatOffset(last.End)
}

// FormatAge formats a file modification time relative to now.
func FormatAge(t time.Time) string {
	return humanize.Time(t)
}

// FormatSize formats a byte count.
func FormatSize(n int64) string {
	return humanize.Bytes(uint64(n))
}

// flatten joins a multi-line cue onto one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
