// Package media inspects local video files and extracts their embedded
// subtitle tracks with ffmpeg.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/tessro/parrot/internal/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// defaultProbeTimeout applies when ctx has no deadline.
const defaultProbeTimeout = 30 * time.Second

// SubtitleStream is one embedded subtitle track.
type SubtitleStream struct {
	Index    int    // position among subtitle streams, for 0:s:N
	Codec    string
	Language string
	Title    string
}

// Info describes a media file.
type Info struct {
	Path      string
	Duration  time.Duration
	Subtitles []SubtitleStream
}

type probeOutput struct {
	Streams []struct {
		CodecType string            `json:"codec_type"`
		CodecName string            `json:"codec_name"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the duration and subtitle streams of a file with ffprobe.
func Probe(ctx context.Context, path string) (*Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("media file not found: %w", err)
	}

	timeout := defaultProbeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := ParseProbe([]byte(out))
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

// ParseProbe decodes ffprobe JSON output.
func ParseProbe(data []byte) (*Info, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: invalid ffprobe output: %v", apperrors.ErrMalformedInput, err)
	}

	info := &Info{}
	if out.Format.Duration != "" {
		secs, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err == nil {
			info.Duration = time.Duration(secs * float64(time.Second))
		}
	}

	for _, s := range out.Streams {
		if s.CodecType != "subtitle" {
			continue
		}
		info.Subtitles = append(info.Subtitles, SubtitleStream{
			Index:    len(info.Subtitles),
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
		})
	}
	return info, nil
}

// extractStream builds the ffmpeg invocation for one subtitle track.
func extractStream(video, out string, stream int) *ffmpeg.Stream {
	return ffmpeg.Input(video).
		Output(out, ffmpeg.KwArgs{
			"map": "0:s:" + strconv.Itoa(stream),
			"c:s": "srt",
		}).
		OverWriteOutput()
}

// ExtractSubtitles writes embedded subtitle track stream of video to out as
// SubRip.
func ExtractSubtitles(ctx context.Context, video, out string, stream int) error {
	if stream < 0 {
		return fmt.Errorf("invalid subtitle stream %d", stream)
	}
	if _, err := os.Stat(video); err != nil {
		return fmt.Errorf("media file not found: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := extractStream(video, out, stream).Compile()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: ffmpeg could not extract subtitle stream %d: %v", apperrors.ErrNoSubtitles, stream, err)
		}
		return nil
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}
