package resolver

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ExtractYouTubeID pulls the video ID out of watch and short URL forms.
func ExtractYouTubeID(url string) (string, error) {
	switch {
	case strings.Contains(url, "youtu.be/"):
		parts := strings.Split(url, "youtu.be/")
		if len(parts) != 2 || parts[1] == "" {
			return "", errors.New("invalid YouTube URL format")
		}
		return strings.Split(parts[1], "?")[0], nil

	case strings.Contains(url, "youtube.com/watch?v="):
		parts := strings.Split(url, "v=")
		if len(parts) != 2 || parts[1] == "" {
			return "", errors.New("invalid YouTube URL format")
		}
		return strings.Split(parts[1], "&")[0], nil

	default:
		return "", errors.New("only YouTube URLs are supported")
	}
}

// parseColonDuration parses "3:20" or "1:05:20" style durations. Anything
// unparsable (including live-stream markers) comes back as zero.
func parseColonDuration(s string) time.Duration {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total int
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second
}
