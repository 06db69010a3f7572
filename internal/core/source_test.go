package core

import (
	"path/filepath"
	"testing"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input    string
		wantKind SourceKind
		wantErr  bool
	}{
		{"", SourceNone, false},
		{"   ", SourceNone, false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", SourceNetwork, false},
		{"HTTP://example.com/video.mp4", SourceNetwork, false},
		{"movie.mkv", SourceLocal, false},
		{"/tmp/clip.mp4", SourceLocal, false},
		{"https://", SourceNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src, err := ParseSource(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSource(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSource(%q) error = %v", tt.input, err)
			}
			if src.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", src.Kind(), tt.wantKind)
			}
		})
	}
}

func TestLocalSourceIsAbsolute(t *testing.T) {
	src, err := LocalSource("video.mp4")
	if err != nil {
		t.Fatalf("LocalSource() error = %v", err)
	}
	if !filepath.IsAbs(src.Location()) {
		t.Errorf("Location() = %q, want absolute path", src.Location())
	}
}

func TestNetworkSourceRejectsScheme(t *testing.T) {
	if _, err := NetworkSource("ftp://example.com/a.mp4"); err == nil {
		t.Error("NetworkSource(ftp) error = nil, want error")
	}
}

func TestNoSource(t *testing.T) {
	var zero MediaSource
	if !zero.IsNone() || !NoSource().IsNone() {
		t.Error("zero MediaSource should be SourceNone")
	}
	if NoSource().String() != "none" {
		t.Errorf("String() = %q, want none", NoSource().String())
	}
}
