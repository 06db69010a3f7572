package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tessro/parrot/internal/config"
	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
	"github.com/tessro/parrot/internal/playback"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hola.

2
00:00:03,500 --> 00:00:06,000
¿Cómo estás?
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func withConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = config.Default()
	t.Cleanup(func() { cfg = prev })
}

func TestListCuesTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ep.srt", sampleSRT)

	var buf bytes.Buffer
	if err := listCues(&buf, path, -1, false); err != nil {
		t.Fatalf("listCues: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"#", "START", "0:01", "Hola.", "¿Cómo estás?", "2 cues", "0:01 - 0:06"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListCuesAt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ep.srt", sampleSRT)

	var buf bytes.Buffer
	if err := listCues(&buf, path, 4*time.Second, true); err != nil {
		t.Fatalf("listCues: %v", err)
	}

	var doc cuesJSON
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Count != 2 {
		t.Errorf("Count = %d, want 2", doc.Count)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].ID != 2 {
		t.Fatalf("Cues = %+v, want only cue 2", doc.Cues)
	}
	if doc.Cues[0].Start != 3.5 {
		t.Errorf("Start = %v, want 3.5", doc.Cues[0].Start)
	}
	if doc.Fingerprint == "" || doc.Fingerprint == "0" {
		t.Errorf("Fingerprint = %q", doc.Fingerprint)
	}

	buf.Reset()
	if err := listCues(&buf, path, 10*time.Second, false); err == nil {
		t.Error("expected error for offset past the last cue")
	}
}

func TestListCuesUnsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ep.ass", sampleSRT)

	err := listCues(&bytes.Buffer{}, path, -1, false)
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFindSidecar(t *testing.T) {
	dir := t.TempDir()
	video := writeFile(t, dir, "movie.mkv", "")

	if got := findSidecar(video); got != "" {
		t.Errorf("findSidecar = %q, want none", got)
	}

	vtt := writeFile(t, dir, "movie.vtt", "WEBVTT\n")
	if got := findSidecar(video); got != vtt {
		t.Errorf("findSidecar = %q, want %q", got, vtt)
	}

	srt := writeFile(t, dir, "movie.srt", sampleSRT)
	if got := findSidecar(video); got != srt {
		t.Errorf("findSidecar = %q, want %q (srt preferred)", got, srt)
	}
}

func TestResolveCuesFromFlag(t *testing.T) {
	withConfig(t)
	dir := t.TempDir()
	subs := writeFile(t, dir, "ep.srt", sampleSRT)
	src, err := core.LocalSource(filepath.Join(dir, "ep.mp4"))
	if err != nil {
		t.Fatal(err)
	}

	store, loader, err := resolveCues(context.Background(), src, cueOptions{Subs: subs, Embedded: -1})
	if err != nil {
		t.Fatalf("resolveCues: %v", err)
	}
	if loader != nil {
		t.Error("expected eager load")
	}
	if store.Count() != 2 {
		t.Errorf("Count = %d, want 2", store.Count())
	}
}

func TestResolveCuesSidecar(t *testing.T) {
	withConfig(t)
	dir := t.TempDir()
	video := writeFile(t, dir, "ep.mp4", "")
	writeFile(t, dir, "ep.srt", sampleSRT)
	src, err := core.LocalSource(video)
	if err != nil {
		t.Fatal(err)
	}

	store, _, err := resolveCues(context.Background(), src, cueOptions{Embedded: -1})
	if err != nil {
		t.Fatalf("resolveCues: %v", err)
	}
	if store.Count() != 2 {
		t.Errorf("Count = %d, want 2", store.Count())
	}
}

func TestResolveCuesNetworkUsesTranscript(t *testing.T) {
	withConfig(t)
	src, err := core.NetworkSource("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatal(err)
	}

	store, loader, err := resolveCues(context.Background(), src, cueOptions{Embedded: -1})
	if err != nil {
		t.Fatalf("resolveCues: %v", err)
	}
	if store != nil {
		t.Error("expected no eager store for a network source")
	}
	if loader == nil {
		t.Error("expected a transcript loader")
	}
}

func TestResolveCuesEmbeddedNeedsLocal(t *testing.T) {
	withConfig(t)
	src, err := core.NetworkSource("https://example.com/v.mp4")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := resolveCues(context.Background(), src, cueOptions{Embedded: 0}); err == nil {
		t.Error("expected error for --embedded with a network source")
	}
}

func TestResolveCuesNone(t *testing.T) {
	withConfig(t)
	dir := t.TempDir()
	video := writeFile(t, dir, "ep.mp4", "not a video")
	src, err := core.LocalSource(video)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err = resolveCues(ctx, src, cueOptions{Embedded: -1})
	if !errors.Is(err, apperrors.ErrNoSubtitles) {
		t.Errorf("err = %v, want ErrNoSubtitles", err)
	}
	if apperrors.GetSuggestion(err) == "" {
		t.Error("expected a suggestion")
	}
}

func TestResolveSourceArgument(t *testing.T) {
	src, err := resolveSource([]string{"https://example.com/v.mp4"}, &cueOptions{})
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if src.Kind() != core.SourceNetwork {
		t.Errorf("Kind = %v, want network", src.Kind())
	}
}

func TestNewTranscriptClientLanguages(t *testing.T) {
	withConfig(t)

	if got := newTranscriptClient(nil).Languages(); len(got) != len(cfg.Transcript.Languages) {
		t.Errorf("Languages = %v, want config default %v", got, cfg.Transcript.Languages)
	}
	if got := newTranscriptClient([]string{"ja"}).Languages(); len(got) != 1 || got[0] != "ja" {
		t.Errorf("Languages = %v, want [ja]", got)
	}
}

func TestSendCues(t *testing.T) {
	store, err := core.Load([]core.Cue{{ID: 1, Start: 0, End: time.Second, Text: "hola"}})
	if err != nil {
		t.Fatal(err)
	}

	var sent playback.Event
	ok := func(ctx context.Context, e playback.Event) error {
		sent = e
		return nil
	}
	if err := sendCues(context.Background(), ok, store); err != nil {
		t.Fatalf("sendCues: %v", err)
	}
	if lc, isLoad := sent.(playback.LoadCues); !isLoad || lc.Store != store {
		t.Errorf("sent %#v, want LoadCues with the store", sent)
	}

	cancelled := func(ctx context.Context, e playback.Event) error { return context.Canceled }
	if err := sendCues(context.Background(), cancelled, store); err != nil {
		t.Errorf("cancellation should not be an error, got %v", err)
	}

	expired := func(ctx context.Context, e playback.Event) error { return context.DeadlineExceeded }
	if err := sendCues(context.Background(), expired, store); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}
