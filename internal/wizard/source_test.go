package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tessro/parrot/internal/core"
)

func TestValidateLocation(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(video, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		kind     string
		location string
		wantErr  bool
	}{
		{"local file", KindLocal, video, false},
		{"local missing", KindLocal, filepath.Join(dir, "nope.mp4"), true},
		{"local directory", KindLocal, dir, true},
		{"empty", KindLocal, "  ", true},
		{"network", KindNetwork, "https://example.com/v.mp4", false},
		{"network bad scheme", KindNetwork, "ftp://example.com/v.mp4", true},
		{"unknown kind", "carrier-pigeon", video, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLocation(tt.kind, tt.location)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLocation(%q, %q) error = %v, wantErr %v", tt.kind, tt.location, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubtitles(t *testing.T) {
	dir := t.TempDir()
	srt := filepath.Join(dir, "subs.srt")
	if err := os.WriteFile(srt, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateSubtitles(""); err != nil {
		t.Errorf("empty path should be accepted, got %v", err)
	}
	if err := ValidateSubtitles(srt); err != nil {
		t.Errorf("existing srt should be accepted, got %v", err)
	}
	if err := ValidateSubtitles(filepath.Join(dir, "subs.ass")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if err := ValidateSubtitles(filepath.Join(dir, "missing.vtt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSelectionSource(t *testing.T) {
	src, err := Selection{Kind: KindNetwork, Location: "https://example.com/a.webm"}.Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Kind() != core.SourceNetwork {
		t.Errorf("Kind() = %v, want network", src.Kind())
	}

	src, err = Selection{Kind: KindLocal, Location: "clip.mp4"}.Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(src.Location()) {
		t.Errorf("Location() = %q, want absolute path", src.Location())
	}

	if _, err := (Selection{Kind: "other"}).Source(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestNeedsSource(t *testing.T) {
	if !NeedsSource(nil) {
		t.Error("NeedsSource(nil) = false")
	}
	if NeedsSource([]string{"clip.mp4"}) {
		t.Error("NeedsSource with argument = true")
	}
	if CanPrompt([]string{"clip.mp4"}, true) {
		t.Error("CanPrompt with argument = true")
	}
	if CanPrompt(nil, false) {
		t.Error("CanPrompt when disabled = true")
	}
}
