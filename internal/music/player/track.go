package player

import "time"

// TrackDescriptor identifies a single playable audio source. Descriptors are
// produced by a Resolver and never mutated afterwards.
type TrackDescriptor struct {
	// StreamLocator is what the Driver needs to open the audio stream,
	// typically a canonical watch URL. The actual media URL is derived
	// fresh at playback time so it cannot expire while queued.
	StreamLocator string
	Title         string
	Duration      time.Duration // zero when unknown (e.g. live streams)
	RequestedBy   string        // display name of the requester
}
