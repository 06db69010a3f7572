package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/subtitle"
	"github.com/tessro/parrot/internal/transcript"
)

var (
	transcriptOut   string
	transcriptLangs []string
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <url|id>",
	Short: "Fetch the caption track of a video",
	Long: `Download the timed-text captions of a video and print them as SubRip.

Languages are tried in order; the first one with captions wins.

Examples:
  parrot transcript https://www.youtube.com/watch?v=dQw4w9WgXcQ
  parrot transcript dQw4w9WgXcQ --lang ja --lang en -o episode.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().StringVarP(&transcriptOut, "output", "o", "", "write to a .srt or .vtt file instead of stdout")
	transcriptCmd.Flags().StringSliceVarP(&transcriptLangs, "lang", "l", nil, "language priority (default from config)")
	rootCmd.AddCommand(transcriptCmd)
}

// newTranscriptClient builds a transcript client from config. Non-empty langs
// replace the configured language order.
func newTranscriptClient(langs []string) *transcript.Client {
	if len(langs) == 0 {
		langs = cfg.Transcript.Languages
	}
	return transcript.New(
		transcript.WithBaseURL(cfg.Transcript.BaseURL),
		transcript.WithLanguages(langs),
		transcript.WithTimeout(cfg.Transcript.TimeoutDuration()),
		transcript.WithLogger(logger),
	)
}

// fetchTranscript resolves a video URL or id and fetches its captions.
func fetchTranscript(ctx context.Context, client *transcript.Client, video string) (*core.Store, string, error) {
	id, err := transcript.VideoID(video)
	if err != nil {
		return nil, "", err
	}
	return client.Fetch(ctx, id)
}

func runTranscript(cmd *cobra.Command, args []string) error {
	client := newTranscriptClient(transcriptLangs)

	store, lang, err := fetchTranscript(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case transcriptOut != "":
		if err := subtitle.WriteFile(transcriptOut, store.Cues()); err != nil {
			return err
		}
		if JSONOutput() {
			return writeJSON(out, map[string]string{
				"path":     transcriptOut,
				"language": lang,
				"cues":     strconv.Itoa(store.Count()),
			})
		}
		_, _ = fmt.Fprintf(out, "Wrote %s (%s) to %s\n", FormatCount(store.Count()), lang, transcriptOut)
		return nil

	case JSONOutput():
		doc := cuesJSON{
			File:        args[0],
			Count:       store.Count(),
			Fingerprint: strconv.FormatUint(store.Fingerprint(), 16),
		}
		for _, c := range store.Cues() {
			doc.Cues = append(doc.Cues, cueJSON{ID: c.ID, Start: c.Start.Seconds(), End: c.End.Seconds(), Text: c.Text})
		}
		return writeJSON(out, doc)

	default:
		return subtitle.Write(out, store.Cues(), subtitle.FormatSRT)
	}
}
