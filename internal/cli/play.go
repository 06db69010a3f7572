package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/tui"
)

var (
	playSubs       string
	playEmbedded   int
	playTranscript bool
	playPaused     bool
	playLangs      []string
)

var playCmd = &cobra.Command{
	Use:   "play [media]",
	Short: "Play a video with synchronized subtitles",
	Long: `Open a video in mpv and follow its subtitles in an interactive view.

Subtitles come from --subs, an embedded track (--embedded), the video's
captions (--transcript, the default for URLs), or a .srt/.vtt file next to
the video. Without a media argument a form asks for one.

Keyboard shortcuts:
  ←/→          Previous/next line
  Enter        Replay current line
  r            Repeat current line
  ↓/↑          Slower/faster (0.5x to 2.0x)
  Space        Play/Pause
  y            Copy current line
  ?            Help
  q, Ctrl+C    Quit

Examples:
  parrot play episode01.mkv
  parrot play episode01.mp4 --subs episode01.ja.srt
  parrot play https://www.youtube.com/watch?v=dQw4w9WgXcQ --lang ja`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationFullscreen: "true"},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playSubs, "subs", "s", "", "subtitle file (.srt or .vtt)")
	playCmd.Flags().IntVarP(&playEmbedded, "embedded", "e", -1, "use embedded subtitle track N")
	playCmd.Flags().BoolVarP(&playTranscript, "transcript", "t", false, "fetch the video's captions")
	playCmd.Flags().BoolVarP(&playPaused, "paused", "p", false, "start paused")
	playCmd.Flags().StringSliceVarP(&playLangs, "lang", "l", nil, "caption language priority (default from config)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := cueOptions{
		Subs:       playSubs,
		Embedded:   playEmbedded,
		Transcript: playTranscript,
		Langs:      playLangs,
	}

	src, err := resolveSource(args, &opts)
	if errors.Is(err, errCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	store, loader, err := resolveCues(ctx, src, opts)
	if err != nil {
		return err
	}

	player, err := launchPlayer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = player.Close() }()

	paused := playPaused || cfg.Playback.StartPaused
	if err := player.Load(ctx, src, !paused); err != nil {
		return fmt.Errorf("failed to open %s: %w", src.Location(), err)
	}
	logger.Infow("Playing", "source", src, "paused", paused, "cues", store.Count())

	return tui.Run(tui.Options{
		Player:      player,
		Source:      src,
		Cues:        store,
		Loader:      tui.CueLoader(loader),
		Interval:    cfg.Playback.Interval(),
		ShowOSD:     cfg.Player.ShowOSD(),
		StartPaused: paused,
		Theme:       cfg.TUI.Theme,
		Logger:      logger,
	})
}
