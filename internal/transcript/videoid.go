package transcript

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/tessro/parrot/internal/errors"
)

var idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the 11-character video id from a watch URL, a short link,
// a /shorts/, /embed/ or /live/ path, or a bare id.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if idRegex.MatchString(raw) {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidVideoURL, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live" || segments[0] == "v"):
			id = segments[1]
		}
	}

	if !idRegex.MatchString(id) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidVideoURL, raw)
	}
	return id, nil
}
