package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
	"github.com/tessro/parrot/internal/media"
	"github.com/tessro/parrot/internal/mpv"
	"github.com/tessro/parrot/internal/subtitle"
	"github.com/tessro/parrot/internal/wizard"
)

// cueOptions selects where a session's cues come from.
type cueOptions struct {
	Subs       string
	Embedded   int // -1 picks automatically
	Transcript bool
	Langs      []string
}

// cueLoader fetches cues in the background.
type cueLoader func(ctx context.Context) (*core.Store, error)

// errCancelled is returned when the user dismisses the source form.
var errCancelled = errors.New("cancelled")

// resolveSource turns the media argument into a source, asking with the
// source form when it is missing.
func resolveSource(args []string, opts *cueOptions) (core.MediaSource, error) {
	if !wizard.NeedsSource(args) {
		return core.ParseSource(args[0])
	}
	if !wizard.IsTerminal() {
		return core.NoSource(), fmt.Errorf("media source required")
	}

	sel, err := wizard.RunSource()
	if err != nil {
		return core.NoSource(), err
	}
	if sel == nil {
		return core.NoSource(), errCancelled
	}
	if sel.Subtitles != "" && opts.Subs == "" {
		opts.Subs = sel.Subtitles
	}
	return sel.Source()
}

// resolveCues loads cues for src. Transcript fetches are returned as a loader
// so the caller can run them without blocking; everything else loads eagerly.
//
// Order: --subs, --embedded, --transcript or a network source, a sidecar
// file next to a local video, then the first embedded subtitle track.
func resolveCues(ctx context.Context, src core.MediaSource, opts cueOptions) (*core.Store, cueLoader, error) {
	if opts.Subs != "" {
		store, err := subtitle.Open(opts.Subs)
		return store, nil, err
	}

	if opts.Embedded >= 0 {
		if src.Kind() != core.SourceLocal {
			return nil, nil, fmt.Errorf("--embedded needs a local video file")
		}
		store, err := extractEmbedded(ctx, src.Location(), opts.Embedded)
		return store, nil, err
	}

	if opts.Transcript || src.Kind() == core.SourceNetwork {
		client := newTranscriptClient(opts.Langs)
		video := src.Location()
		return nil, func(ctx context.Context) (*core.Store, error) {
			store, lang, err := fetchTranscript(ctx, client, video)
			if err != nil {
				return nil, err
			}
			logger.Infow("Using transcript", "video", video, "lang", lang, "cues", store.Count())
			return store, nil
		}, nil
	}

	if src.Kind() == core.SourceLocal {
		if sidecar := findSidecar(src.Location()); sidecar != "" {
			logger.Infow("Using sidecar subtitles", "file", sidecar)
			store, err := subtitle.Open(sidecar)
			return store, nil, err
		}

		info, err := media.Probe(ctx, src.Location())
		if err != nil {
			logger.Warnw("Probe failed", "file", src.Location(), "error", err)
		} else if len(info.Subtitles) > 0 {
			st := info.Subtitles[0]
			logger.Infow("Using embedded subtitles", "stream", st.Index, "codec", st.Codec, "lang", st.Language)
			store, err := extractEmbedded(ctx, src.Location(), st.Index)
			return store, nil, err
		}
	}

	return nil, nil, apperrors.WithSuggestion(
		fmt.Errorf("%w for %s", apperrors.ErrNoSubtitles, src),
		"Pass a subtitle file with --subs, or --embedded N to use a track inside the video",
	)
}

// findSidecar returns a subtitle file sharing the video's base name.
func findSidecar(video string) string {
	base := strings.TrimSuffix(video, filepath.Ext(video))
	for _, f := range []subtitle.Format{subtitle.FormatSRT, subtitle.FormatVTT} {
		candidate := base + f.Extension()
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// extractEmbedded converts a subtitle track inside video to SubRip and
// parses it.
func extractEmbedded(ctx context.Context, video string, stream int) (*core.Store, error) {
	dir, err := os.MkdirTemp("", "parrot-subs-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	out := filepath.Join(dir, "track"+subtitle.FormatSRT.Extension())
	if err := media.ExtractSubtitles(ctx, video, out, stream); err != nil {
		return nil, err
	}
	return subtitle.Open(out)
}

// launchPlayer starts mpv with the configured options.
func launchPlayer(ctx context.Context) (*mpv.Player, error) {
	return mpv.Launch(ctx, mpv.Options{
		Binary:       cfg.Player.Binary,
		Socket:       cfg.Player.Socket,
		StartTimeout: cfg.Player.StartTimeoutDuration(),
		ExtraArgs:    cfg.Player.ExtraArgs,
		Logger:       logger,
	})
}
