package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"groovebot/internal/music/player"
	"groovebot/pkg/retrylimit"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/ppalone/ytsearch"
)

const resolveAttempts = 3

// YouTube resolves queries through YouTube: URLs go straight to metadata
// lookup, free text goes through search and takes the first hit.
type YouTube struct {
	search  *ytsearch.Client
	videos  *youtube.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewYouTube() *YouTube {
	return &YouTube{
		search: ytsearch.NewClient(nil),
		videos: &youtube.Client{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
		},
		limiter: retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
	}
}

func (r *YouTube) Resolve(ctx context.Context, query, requestedBy string) (player.TrackDescriptor, error) {
	if isURL(query) {
		return r.resolveURL(ctx, query, requestedBy)
	}
	return r.resolveSearch(ctx, query, requestedBy)
}

func (r *YouTube) resolveURL(ctx context.Context, rawURL, requestedBy string) (player.TrackDescriptor, error) {
	videoID, err := ExtractYouTubeID(rawURL)
	if err != nil {
		return player.TrackDescriptor{}, unsupported(rawURL, err)
	}

	var video *youtube.Video
	err = retrylimit.WithRetry(ctx, resolveAttempts, func() error {
		v, verr := r.videos.GetVideoContext(ctx, videoID)
		if verr != nil {
			if !isTransient(verr) {
				return retrylimit.Fatal(verr)
			}
			return verr
		}
		video = v
		return nil
	}, r.limiter)
	if err != nil {
		if isTransient(err) {
			return player.TrackDescriptor{}, network(rawURL, err)
		}
		return player.TrackDescriptor{}, notFound(rawURL, err)
	}

	return player.TrackDescriptor{
		StreamLocator: watchURL(videoID),
		Title:         video.Title,
		Duration:      video.Duration,
		RequestedBy:   requestedBy,
	}, nil
}

var errNoResults = errors.New("no search results")

func (r *YouTube) resolveSearch(ctx context.Context, query, requestedBy string) (player.TrackDescriptor, error) {
	var track player.TrackDescriptor
	err := retrylimit.WithRetry(ctx, resolveAttempts, func() error {
		res, serr := r.search.Search(ctx, query)
		if serr != nil {
			return serr
		}
		if len(res.Results) == 0 {
			return retrylimit.Fatal(errNoResults)
		}
		hit := res.Results[0]
		track = player.TrackDescriptor{
			StreamLocator: watchURL(hit.VideoID),
			Title:         hit.Title,
			Duration:      parseColonDuration(hit.Duration),
			RequestedBy:   requestedBy,
		}
		return nil
	}, r.limiter)
	if err != nil {
		if errors.Is(err, errNoResults) {
			return player.TrackDescriptor{}, notFound(query, nil)
		}
		return player.TrackDescriptor{}, network(query, err)
	}
	return track, nil
}

func watchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// isTransient separates network-flavored failures (worth reporting as
// upstream trouble and worth retrying) from everything else.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
