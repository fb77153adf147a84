// Package driver streams a track's audio into a voice connection: a fresh
// media URL is extracted at start time, ffmpeg decodes it to raw PCM, and
// 20 ms frames are Opus-encoded into the connection's send channel.
package driver

import (
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"groovebot/internal/music/player"
	"groovebot/internal/music/resolver"

	youtube "github.com/kkdai/youtube/v2"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// FFmpeg implements player.Driver on an ffmpeg child process per stream.
type FFmpeg struct {
	videos *youtube.Client
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		videos: &youtube.Client{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
		},
	}
}

// Start opens the media stream for a track and begins pumping audio into
// the voice connection. The returned stream reports exactly one terminal
// event on Done.
func (d *FFmpeg) Start(h player.VoiceHandle, track player.TrackDescriptor) (player.Stream, error) {
	mediaURL, err := d.mediaURL(track.StreamLocator)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("ffmpeg",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", mediaURL,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)
	pcm, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	s := newPCMStream(pcm, func() {
		cmd.Process.Kill()
	})
	go s.pump(h)
	return s, nil
}

// mediaURL resolves the locator's video to a fresh direct audio URL.
// Locators are stored as watch URLs so queued tracks never carry an
// expiring media link.
func (d *FFmpeg) mediaURL(locator string) (string, error) {
	videoID, err := resolver.ExtractYouTubeID(locator)
	if err != nil {
		return "", err
	}

	video, err := d.videos.GetVideo(videoID)
	if err != nil {
		return "", fmt.Errorf("video lookup error: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", errors.New("no audio formats found for video")
	}

	link, err := d.videos.GetStreamURL(video, &formats[0])
	if err != nil {
		return "", fmt.Errorf("get stream URL error: %w", err)
	}
	return link, nil
}
