package player

import (
	"context"
	"errors"
	"sync"
)

// Test doubles for the session's collaborators. The driver and notifier
// signal through channels so tests can wait for asynchronous transitions
// instead of sleeping.

type fakeHandle struct {
	opus        chan []byte
	mu          sync.Mutex
	disconnects int
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{opus: make(chan []byte, 64)}
}

func (h *fakeHandle) Speaking(bool) error     { return nil }
func (h *fakeHandle) OpusSend() chan<- []byte { return h.opus }

func (h *fakeHandle) Disconnect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnects++
	return nil
}

func (h *fakeHandle) disconnectCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disconnects
}

type fakeDialer struct {
	handle *fakeHandle
	err    error
	mu     sync.Mutex
	joins  int
}

func (d *fakeDialer) Join(guildID, channelID string) (VoiceHandle, error) {
	d.mu.Lock()
	d.joins++
	d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	return d.handle, nil
}

func (d *fakeDialer) joinCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.joins
}

type fakeStream struct {
	done    chan error
	mu      sync.Mutex
	stopped bool
	paused  bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{done: make(chan error, 1)}
}

func (s *fakeStream) Done() <-chan error { return s.done }

func (s *fakeStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *fakeStream) SetPaused(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = p
}

func (s *fakeStream) wasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *fakeStream) isPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *fakeStream) finish(err error) { s.done <- err }

// fakeDriver hands out one fakeStream per Start call and announces each
// started track on the started channel.
type fakeDriver struct {
	started chan TrackDescriptor

	mu      sync.Mutex
	streams []*fakeStream
	failOn  map[string]error // title -> start error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{started: make(chan TrackDescriptor, 16)}
}

func (d *fakeDriver) Start(h VoiceHandle, track TrackDescriptor) (Stream, error) {
	d.mu.Lock()
	if err, ok := d.failOn[track.Title]; ok {
		d.mu.Unlock()
		return nil, err
	}
	s := newFakeStream()
	d.streams = append(d.streams, s)
	d.mu.Unlock()

	d.started <- track
	return s, nil
}

func (d *fakeDriver) stream(i int) *fakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streams[i]
}

type fakeNotifier struct {
	mu       sync.Mutex
	notices  []string
	playback []TrackDescriptor
}

func (n *fakeNotifier) Notify(channelID, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, text)
}

func (n *fakeNotifier) TrackStarted(guildID string, track TrackDescriptor) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playback = append(n.playback, track)
}

func (n *fakeNotifier) noticeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

// fakeResolver answers from a fixed table and can be gated so a resolve
// stays in flight until the test releases it.
type fakeResolver struct {
	err  error
	gate chan struct{}
}

func (r *fakeResolver) Resolve(ctx context.Context, query, requestedBy string) (TrackDescriptor, error) {
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return TrackDescriptor{}, ctx.Err()
		}
	}
	if r.err != nil {
		return TrackDescriptor{}, r.err
	}
	return TrackDescriptor{
		StreamLocator: "https://www.youtube.com/watch?v=" + query,
		Title:         query,
		RequestedBy:   requestedBy,
	}, nil
}

var errBoom = errors.New("boom")
