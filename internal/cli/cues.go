package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/subtitle"
)

var cuesAt time.Duration

var cuesCmd = &cobra.Command{
	Use:   "cues <file>",
	Short: "List the cues in a subtitle file",
	Long: `Parse a .srt or .vtt file and list its cues.

Examples:
  parrot cues episode01.srt
  parrot cues episode01.vtt --at 1m30s
  parrot cues episode01.srt --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := time.Duration(-1)
		if cmd.Flags().Changed("at") {
			at = cuesAt
		}
		return listCues(cmd.OutOrStdout(), args[0], at, JSONOutput())
	},
}

func init() {
	cuesCmd.Flags().DurationVar(&cuesAt, "at", 0, "show only the cue active at this offset")
	rootCmd.AddCommand(cuesCmd)
}

type cueJSON struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type cuesJSON struct {
	File        string    `json:"file"`
	Count       int       `json:"count"`
	Fingerprint string    `json:"fingerprint"`
	Cues        []cueJSON `json:"cues"`
}

// listCues prints the cues in path. A non-negative at selects the single cue
// containing that offset.
func listCues(out io.Writer, path string, at time.Duration, asJSON bool) error {
	store, err := subtitle.Open(path)
	if err != nil {
		return err
	}
	logger.Debugw("Parsed subtitles", "file", path, "cues", store.Count())

	cues := store.Cues()
	if at >= 0 {
		c, ok := store.IndexOfTimestamp(at)
		if !ok {
			return fmt.Errorf("no cue at %s", core.FormatOffset(at))
		}
		cues = []core.Cue{c}
	}

	if asJSON {
		doc := cuesJSON{
			File:        path,
			Count:       store.Count(),
			Fingerprint: strconv.FormatUint(store.Fingerprint(), 16),
			Cues:        make([]cueJSON, 0, len(cues)),
		}
		for _, c := range cues {
			doc.Cues = append(doc.Cues, cueJSON{
				ID:    c.ID,
				Start: c.Start.Seconds(),
				End:   c.End.Seconds(),
				Text:  c.Text,
			})
		}
		return writeJSON(out, doc)
	}

	tbl := NewTable(out, "#", "START", "END", "TEXT")
	for _, c := range cues {
		tbl.Row(strconv.Itoa(c.ID), core.FormatOffset(c.Start), core.FormatOffset(c.End), TruncateString(flatten(c.Text), 60))
	}
	tbl.Flush()

	summary := fmt.Sprintf("\n%s, %s", FormatCount(store.Count()), FormatSpan(store))
	if info, err := os.Stat(path); err == nil {
		summary += fmt.Sprintf(", %s, modified %s", FormatSize(info.Size()), FormatAge(info.ModTime()))
	}
	_, _ = fmt.Fprintln(out, summary)
	return nil
}
