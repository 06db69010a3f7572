package core

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind indicates where the media comes from.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceLocal
	SourceNetwork
)

// String returns the kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceNone:
		return "none"
	case SourceLocal:
		return "local"
	case SourceNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// MediaSource is the video being played. The zero value is SourceNone.
type MediaSource struct {
	kind     SourceKind
	location string
}

// NoSource returns the empty media source.
func NoSource() MediaSource {
	return MediaSource{}
}

// LocalSource returns a source for a file on disk.
func LocalSource(path string) (MediaSource, error) {
	if strings.TrimSpace(path) == "" {
		return MediaSource{}, fmt.Errorf("empty file path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return MediaSource{}, fmt.Errorf("resolve path: %w", err)
	}
	return MediaSource{kind: SourceLocal, location: abs}, nil
}

// NetworkSource returns a source for an http(s) URL.
func NetworkSource(raw string) (MediaSource, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return MediaSource{}, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return MediaSource{}, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return MediaSource{}, fmt.Errorf("url has no host: %s", raw)
	}
	return MediaSource{kind: SourceNetwork, location: u.String()}, nil
}

// ParseSource classifies s as a network URL or a local path.
func ParseSource(s string) (MediaSource, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoSource(), nil
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NetworkSource(s)
	}
	return LocalSource(s)
}

// Kind returns the source kind.
func (m MediaSource) Kind() SourceKind {
	return m.kind
}

// Location returns the absolute path or URL.
func (m MediaSource) Location() string {
	return m.location
}

// IsNone returns true if no media is selected.
func (m MediaSource) IsNone() bool {
	return m.kind == SourceNone
}

func (m MediaSource) String() string {
	if m.IsNone() {
		return "none"
	}
	return m.kind.String() + ":" + m.location
}
