package player

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrSessionClosed is returned for any request sent to a session that
	// has already reached its terminal state. Late work (a resolve that
	// finished after a disconnect, a stale stream event) is discarded
	// through this error instead of reviving playback.
	ErrSessionClosed = errors.New("session is closed")

	// ErrNothingPlaying is the "nothing to skip / nothing playing" answer.
	ErrNothingPlaying = errors.New("nothing is playing")
)

// VoiceJoinError wraps every way a voice join can fail (permissions,
// channel full, network) into the single condition the command layer
// reports. The session is destroyed when it occurs.
type VoiceJoinError struct {
	ChannelID string
	Err       error
}

func (e *VoiceJoinError) Error() string {
	return fmt.Sprintf("could not join voice channel %s: %v", e.ChannelID, e.Err)
}

func (e *VoiceJoinError) Unwrap() error { return e.Err }

// VoiceHandle is an open voice connection owned by exactly one session.
type VoiceHandle interface {
	Speaking(bool) error
	OpusSend() chan<- []byte
	Disconnect() error
}

// VoiceDialer opens voice connections. Implemented on discordgo in
// internal/discord, faked in tests.
type VoiceDialer interface {
	Join(guildID, channelID string) (VoiceHandle, error)
}

// Stream is one started playback. It reports exactly one terminal event on
// Done: nil for normal completion, non-nil for a mid-stream failure.
type Stream interface {
	Done() <-chan error
	Stop()
	SetPaused(bool)
}

// Driver turns a track into an audio stream on a voice connection.
type Driver interface {
	Start(h VoiceHandle, track TrackDescriptor) (Stream, error)
}

// Notifier carries user-facing notices and playback bookkeeping out of the
// session without the session knowing about Discord or storage.
type Notifier interface {
	Notify(channelID, text string)
	TrackStarted(guildID string, track TrackDescriptor)
}

type sessionState int

const (
	stateIdle sessionState = iota
	stateConnecting
	statePlaying
	stateAdvancing
	stateDisconnecting
)

// Session binds one guild's voice connection lifecycle to its queue.
//
// All state transitions run on a single goroutine fed by the inbox, so a
// play request, a skip and a stream-end event for the same guild can never
// interleave mid-transition. Stream-end events carry the sequence number of
// the stream that produced them; a skip bumps the sequence, which turns the
// stopped stream's eventual event into a stale no-op instead of a second
// advance.
type Session struct {
	guildID  string
	dialer   VoiceDialer
	driver   Driver
	notifier Notifier
	onClose  func(*Session)

	inbox  chan any
	closed chan struct{}

	// Everything below is owned by the run goroutine.
	queue         *GuildQueue
	st            sessionState
	vc            VoiceHandle
	stream        Stream
	seq           uint64
	textChannelID string
}

func newSession(guildID string, queueCap int, dialer VoiceDialer, driver Driver, notifier Notifier, onClose func(*Session)) *Session {
	return &Session{
		guildID:  guildID,
		dialer:   dialer,
		driver:   driver,
		notifier: notifier,
		onClose:  onClose,
		inbox:    make(chan any, 16),
		closed:   make(chan struct{}),
		queue:    NewGuildQueue(queueCap),
		st:       stateIdle,
	}
}

// Inbox messages. Every reply channel is buffered so the run goroutine
// never blocks on a caller that gave up.

type playMsg struct {
	track          TrackDescriptor
	voiceChannelID string
	textChannelID  string
	reply          chan playReply
}

type playReply struct {
	position int
	err      error
}

type skipMsg struct{ reply chan skipReply }

type skipReply struct {
	title string
	err   error
}

type disconnectMsg struct{ reply chan error }

type snapshotMsg struct{ reply chan QueueSnapshot }

// QueueSnapshot is a point-in-time copy of a session's queue for display.
type QueueSnapshot struct {
	Current *TrackDescriptor
	Pending []TrackDescriptor
}

type pauseMsg struct {
	paused bool
	reply  chan error
}

type shuffleMsg struct{ reply chan int }

type clearMsg struct{ reply chan int }

type streamEndMsg struct {
	seq uint64
	err error
}

// send delivers a message unless the session is already terminal.
func (s *Session) send(m any) error {
	select {
	case s.inbox <- m:
		return nil
	case <-s.closed:
		return ErrSessionClosed
	}
}

// Enqueue hands a resolved track to the session. On the first track it
// joins the requester's voice channel and starts playback; afterwards it
// only appends. The descriptor is discarded with ErrSessionClosed if the
// session was torn down while the caller was busy resolving.
func (s *Session) Enqueue(track TrackDescriptor, voiceChannelID, textChannelID string) (int, error) {
	m := playMsg{track: track, voiceChannelID: voiceChannelID, textChannelID: textChannelID, reply: make(chan playReply, 1)}
	if err := s.send(m); err != nil {
		return 0, err
	}
	select {
	case r := <-m.reply:
		return r.position, r.err
	case <-s.closed:
		return 0, ErrSessionClosed
	}
}

// Skip stops the current track and advances the queue by exactly one
// position. Returns the skipped title, or ErrNothingPlaying when there is
// no current track.
func (s *Session) Skip() (string, error) {
	m := skipMsg{reply: make(chan skipReply, 1)}
	if err := s.send(m); err != nil {
		return "", err
	}
	select {
	case r := <-m.reply:
		return r.title, r.err
	case <-s.closed:
		return "", ErrSessionClosed
	}
}

// Disconnect clears the queue and tears the voice connection down.
func (s *Session) Disconnect() error {
	m := disconnectMsg{reply: make(chan error, 1)}
	if err := s.send(m); err != nil {
		return err
	}
	select {
	case err := <-m.reply:
		return err
	case <-s.closed:
		return nil // teardown completed without us
	}
}

func (s *Session) Snapshot() (QueueSnapshot, error) {
	m := snapshotMsg{reply: make(chan QueueSnapshot, 1)}
	if err := s.send(m); err != nil {
		return QueueSnapshot{}, err
	}
	select {
	case snap := <-m.reply:
		return snap, nil
	case <-s.closed:
		return QueueSnapshot{}, ErrSessionClosed
	}
}

func (s *Session) SetPaused(paused bool) error {
	m := pauseMsg{paused: paused, reply: make(chan error, 1)}
	if err := s.send(m); err != nil {
		return err
	}
	select {
	case err := <-m.reply:
		return err
	case <-s.closed:
		return ErrSessionClosed
	}
}

func (s *Session) Shuffle() (int, error) {
	m := shuffleMsg{reply: make(chan int, 1)}
	if err := s.send(m); err != nil {
		return 0, err
	}
	select {
	case n := <-m.reply:
		return n, nil
	case <-s.closed:
		return 0, ErrSessionClosed
	}
}

func (s *Session) ClearPending() (int, error) {
	m := clearMsg{reply: make(chan int, 1)}
	if err := s.send(m); err != nil {
		return 0, err
	}
	select {
	case n := <-m.reply:
		return n, nil
	case <-s.closed:
		return 0, ErrSessionClosed
	}
}

// Closed reports session termination to anyone who needs to wait on it.
func (s *Session) Closed() <-chan struct{} { return s.closed }

func (s *Session) run() {
	for m := range s.inbox {
		if terminal := s.handle(m); terminal {
			close(s.closed)
			return
		}
	}
}

func (s *Session) handle(m any) bool {
	switch m := m.(type) {
	case playMsg:
		return s.handlePlay(m)
	case skipMsg:
		return s.handleSkip(m)
	case disconnectMsg:
		log.Printf("[Session] %s: disconnect requested", s.guildID)
		s.teardown()
		m.reply <- nil
		return true
	case streamEndMsg:
		return s.handleStreamEnd(m)
	case snapshotMsg:
		snap := QueueSnapshot{Pending: s.queue.Pending()}
		if cur, ok := s.queue.PeekCurrent(); ok {
			snap.Current = &cur
		}
		m.reply <- snap
	case pauseMsg:
		if s.stream == nil {
			m.reply <- ErrNothingPlaying
		} else {
			s.stream.SetPaused(m.paused)
			m.reply <- nil
		}
	case shuffleMsg:
		m.reply <- s.queue.ShufflePending()
	case clearMsg:
		m.reply <- s.queue.ClearPending()
	}
	return false
}

func (s *Session) handlePlay(m playMsg) bool {
	s.textChannelID = m.textChannelID

	pos, err := s.queue.Enqueue(m.track)
	if err != nil {
		m.reply <- playReply{err: err}
		return false
	}

	if s.st != stateIdle {
		m.reply <- playReply{position: pos}
		return false
	}

	s.st = stateConnecting
	vc, err := s.dialer.Join(s.guildID, m.voiceChannelID)
	if err != nil {
		m.reply <- playReply{err: &VoiceJoinError{ChannelID: m.voiceChannelID, Err: err}}
		s.teardown()
		return true
	}
	s.vc = vc
	// Position 0 tells the caller playback starts right away; the track
	// started notice covers the announcement.
	m.reply <- playReply{}

	if !s.startNext() {
		s.teardown()
		return true
	}
	return false
}

func (s *Session) handleSkip(m skipMsg) bool {
	cur, ok := s.queue.PeekCurrent()
	if !ok {
		m.reply <- skipReply{err: ErrNothingPlaying}
		return false
	}

	// Stop the stream and invalidate its pending end event, then advance
	// here and now. Exactly one advance happens for this track no matter
	// how the stop races with a natural finish.
	if s.stream != nil {
		s.stream.Stop()
		s.stream = nil
	}
	s.seq++

	m.reply <- skipReply{title: cur.Title}
	if !s.startNext() {
		s.teardown()
		return true
	}
	return false
}

func (s *Session) handleStreamEnd(m streamEndMsg) bool {
	if m.seq != s.seq {
		// The stream this event belongs to was already skipped or torn
		// down; its advance has happened elsewhere.
		return false
	}

	if m.err != nil {
		cur, _ := s.queue.PeekCurrent()
		log.Printf("[Session] %s: track %q errored mid-stream: %v", s.guildID, cur.Title, m.err)
		s.notifier.Notify(s.textChannelID, fmt.Sprintf("⚠️ Playback of **%s** failed, moving on.", cur.Title))
	}

	s.stream = nil
	if !s.startNext() {
		s.teardown()
		return true
	}
	return false
}

// startNext pops tracks until one starts streaming. Tracks the driver
// refuses to start are announced and dropped, never retried. Reports false
// once the queue is exhausted.
func (s *Session) startNext() bool {
	s.st = stateAdvancing
	for {
		track, ok := s.queue.PopNext()
		if !ok {
			return false
		}

		stream, err := s.driver.Start(s.vc, track)
		if err != nil {
			log.Printf("[Session] %s: failed to start %q: %v", s.guildID, track.Title, err)
			s.notifier.Notify(s.textChannelID, fmt.Sprintf("⚠️ Could not play **%s**, skipping it.", track.Title))
			continue
		}

		s.seq++
		s.stream = stream
		s.st = statePlaying
		s.notifier.TrackStarted(s.guildID, track)
		s.notifier.Notify(s.textChannelID, fmt.Sprintf("▶️ Now playing **%s**", track.Title))
		go s.watchStream(s.seq, stream)
		return true
	}
}

// watchStream forwards a stream's single terminal event into the inbox,
// tagged with the stream's sequence number for staleness detection.
func (s *Session) watchStream(seq uint64, stream Stream) {
	err := <-stream.Done()
	select {
	case s.inbox <- streamEndMsg{seq: seq, err: err}:
	case <-s.closed:
	}
}

// teardown releases everything the session owns. Best effort: a failed
// voice disconnect is logged and the session still dies.
func (s *Session) teardown() {
	s.st = stateDisconnecting
	s.queue.Clear()
	if s.stream != nil {
		s.stream.Stop()
		s.stream = nil
	}
	s.seq++
	if s.vc != nil {
		if err := s.vc.Disconnect(); err != nil {
			log.Printf("[WARN] Session %s: voice disconnect failed: %v", s.guildID, err)
		}
		s.vc = nil
	}
	if s.onClose != nil {
		s.onClose(s)
	}
	log.Printf("[Session] %s: closed", s.guildID)
}
