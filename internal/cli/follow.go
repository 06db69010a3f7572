package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/keys"
	"github.com/tessro/parrot/internal/playback"
	"github.com/tessro/parrot/internal/tail"
	"golang.org/x/term"
)

var (
	followSubs       string
	followEmbedded   int
	followTranscript bool
	followLangs      []string
	followKeys       bool
	followNoEmoji    bool
	followTimestamp  bool
	followFormat     string
)

var followCmd = &cobra.Command{
	Use:     "follow [media]",
	Aliases: []string{"tail"},
	Short:   "Print subtitle changes as the video plays",
	Long: `Open a video in mpv and print each subtitle line as playback reaches it.

With --keys the terminal also accepts the transport keys:
  ←/→ previous/next line, Enter replay, r repeat, ↓/↑ slower/faster, q quit.

Template fields for --format:
  {{.Type}} {{.Emoji}} {{.Time}} {{.Elapsed}} {{.CueID}} {{.Start}} {{.End}}
  {{.Text}} {{.Rate}} {{.Repeat}} {{.Mode}}

Examples:
  parrot follow episode01.mp4 --subs episode01.srt --keys
  parrot tail episode01.mkv --format '{{.Start}} {{.Text}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFollow,
}

func init() {
	followCmd.Flags().StringVarP(&followSubs, "subs", "s", "", "subtitle file (.srt or .vtt)")
	followCmd.Flags().IntVarP(&followEmbedded, "embedded", "e", -1, "use embedded subtitle track N")
	followCmd.Flags().BoolVar(&followTranscript, "transcript", false, "fetch the video's captions")
	followCmd.Flags().StringSliceVarP(&followLangs, "lang", "l", nil, "caption language priority (default from config)")
	followCmd.Flags().BoolVarP(&followKeys, "keys", "k", false, "read transport keys from the terminal")
	followCmd.Flags().BoolVar(&followNoEmoji, "no-emoji", false, "disable emoji output")
	followCmd.Flags().BoolVarP(&followTimestamp, "timestamp", "t", false, "show timestamps")
	followCmd.Flags().StringVarP(&followFormat, "format", "f", "", "custom format template")

	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := cueOptions{
		Subs:       followSubs,
		Embedded:   followEmbedded,
		Transcript: followTranscript,
		Langs:      followLangs,
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
	if loader != nil {
		if store, err = loader(ctx); err != nil {
			return err
		}
	}

	player, err := launchPlayer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = player.Close() }()

	if err := player.Load(ctx, src, !cfg.Playback.StartPaused); err != nil {
		return fmt.Errorf("failed to open %s: %w", src.Location(), err)
	}

	// Stop when the player window is closed
	go func() {
		select {
		case <-player.Client().Done():
			logger.Infow("Player exited")
			cancel()
		case <-ctx.Done():
		}
	}()

	formatter := tail.NewFormatter(
		tail.WithEmoji(!followNoEmoji),
		tail.WithTimestamp(followTimestamp),
		tail.WithTemplate(followFormat),
	)

	sync := playback.NewSynchronizer(player, playback.WithLogger(logger))
	loop := playback.NewLoop(sync, 0)

	errCh := make(chan error, 3)
	go func() {
		errCh <- loop.Run(ctx)
	}()

	if err := sendCues(ctx, loop.Send, store); err != nil {
		return err
	}

	poller := playback.NewPoller(player, cfg.Playback.Interval(), playback.WithGeneration(sync.Generation))
	go func() {
		errCh <- poller.Run(ctx, loop.Send)
	}()

	newline := "\n"
	if followKeys {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("--keys needs an interactive terminal")
		}
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
		newline = "\r\n"

		go func() {
			err := keys.Listen(ctx, os.Stdin, loop.Send)
			if err == nil {
				// q or Ctrl+C
				cancel()
			}
			errCh <- err
		}()
	}

	out := cmd.OutOrStdout()
	showOSD := cfg.Player.ShowOSD()

	// Print changes as they arrive
	for {
		select {
		case c, ok := <-loop.Changes():
			if !ok {
				return nil
			}
			_, _ = fmt.Fprint(out, formatter.Format(c)+newline)
			if showOSD && c.Cue != nil && c.Current.ActiveCueID != c.Previous.ActiveCueID {
				osdCtx, osdCancel := context.WithTimeout(ctx, time.Second)
				if err := player.ShowText(osdCtx, c.Cue.Text, 4*time.Second); err != nil {
					logger.Debugw("OSD update failed", "error", err)
				}
				osdCancel()
			}

		case err := <-errCh:
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}
	}
}

// sendCues queues the initial cue store. Cancellation is a normal exit.
func sendCues(ctx context.Context, send func(context.Context, playback.Event) error, store *core.Store) error {
	err := send(ctx, playback.LoadCues{Store: store})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cues: %w", err)
	}
	return nil
}
