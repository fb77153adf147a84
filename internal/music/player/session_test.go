package player

import (
	"errors"
	"testing"
	"time"
)

type sessionFixture struct {
	sess     *Session
	handle   *fakeHandle
	dialer   *fakeDialer
	driver   *fakeDriver
	notifier *fakeNotifier
	removed  chan *Session
}

func startTestSession(queueCap int) *sessionFixture {
	f := &sessionFixture{
		handle:   newFakeHandle(),
		driver:   newFakeDriver(),
		notifier: &fakeNotifier{},
		removed:  make(chan *Session, 1),
	}
	f.dialer = &fakeDialer{handle: f.handle}
	f.sess = newSession("guild-1", queueCap, f.dialer, f.driver, f.notifier, func(s *Session) {
		f.removed <- s
	})
	go f.sess.run()
	return f
}

func waitStarted(t *testing.T, f *sessionFixture) TrackDescriptor {
	t.Helper()
	select {
	case tr := <-f.driver.started:
		return tr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a track to start")
		return TrackDescriptor{}
	}
}

func waitClosed(t *testing.T, f *sessionFixture) {
	t.Helper()
	select {
	case <-f.sess.Closed():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session to close")
	}
	select {
	case <-f.removed:
	case <-time.After(2 * time.Second):
		t.Fatal("session closed but never removed from registry")
	}
}

func TestSessionPlaysQueueInOrder(t *testing.T) {
	f := startTestSession(0)

	if pos, err := f.sess.Enqueue(track("a"), "vc", "tc"); err != nil || pos != 0 {
		t.Fatalf("enqueue a: pos=%d err=%v, want immediate start", pos, err)
	}
	if pos, err := f.sess.Enqueue(track("b"), "vc", "tc"); err != nil || pos != 1 {
		t.Fatalf("enqueue b: pos=%d err=%v, want position 1", pos, err)
	}
	if pos, err := f.sess.Enqueue(track("c"), "vc", "tc"); err != nil || pos != 2 {
		t.Fatalf("enqueue c: pos=%d err=%v, want position 2", pos, err)
	}

	for i, want := range []string{"a", "b", "c"} {
		got := waitStarted(t, f)
		if got.Title != want {
			t.Fatalf("track %d: got %q, want %q", i, got.Title, want)
		}
		f.driver.stream(i).finish(nil)
	}

	waitClosed(t, f)
	if n := f.handle.disconnectCount(); n != 1 {
		t.Fatalf("voice disconnects: got %d, want 1", n)
	}
	if f.dialer.joinCount() != 1 {
		t.Fatalf("voice joins: got %d, want 1", f.dialer.joinCount())
	}
}

func TestSessionSkipAdvancesExactlyOnce(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	f.sess.Enqueue(track("b"), "vc", "tc")
	f.sess.Enqueue(track("c"), "vc", "tc")
	waitStarted(t, f)

	title, err := f.sess.Skip()
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if title != "a" {
		t.Fatalf("skip: got %q, want %q", title, "a")
	}
	if got := waitStarted(t, f); got.Title != "b" {
		t.Fatalf("after skip: got %q, want %q", got.Title, "b")
	}
	if !f.driver.stream(0).wasStopped() {
		t.Fatal("skipped stream was not stopped")
	}

	// The stopped stream's terminal event arrives late. It must not
	// advance the queue a second time.
	f.driver.stream(0).finish(nil)
	time.Sleep(100 * time.Millisecond)

	snap, err := f.sess.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Current == nil || snap.Current.Title != "b" {
		t.Fatalf("current after stale event: got %+v, want b", snap.Current)
	}
	if len(snap.Pending) != 1 || snap.Pending[0].Title != "c" {
		t.Fatalf("pending after stale event: got %+v, want [c]", snap.Pending)
	}

	// The live stream still advances normally.
	f.driver.stream(1).finish(nil)
	if got := waitStarted(t, f); got.Title != "c" {
		t.Fatalf("after b finished: got %q, want %q", got.Title, "c")
	}
}

func TestSessionSkipLastTrackTearsDown(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	waitStarted(t, f)

	title, err := f.sess.Skip()
	if err != nil || title != "a" {
		t.Fatalf("skip: title=%q err=%v", title, err)
	}

	waitClosed(t, f)
	if n := f.handle.disconnectCount(); n != 1 {
		t.Fatalf("voice disconnects: got %d, want 1", n)
	}
}

func TestSessionUnplayableTrackIsDropped(t *testing.T) {
	f := startTestSession(0)
	f.driver.failOn = map[string]error{"b": errBoom}

	f.sess.Enqueue(track("a"), "vc", "tc")
	f.sess.Enqueue(track("b"), "vc", "tc")
	f.sess.Enqueue(track("c"), "vc", "tc")

	if got := waitStarted(t, f); got.Title != "a" {
		t.Fatalf("first track: got %q", got.Title)
	}
	f.driver.stream(0).finish(nil)

	// b refuses to start; playback moves straight on to c.
	if got := waitStarted(t, f); got.Title != "c" {
		t.Fatalf("after unplayable track: got %q, want %q", got.Title, "c")
	}
}

func TestSessionMidStreamErrorAdvances(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	f.sess.Enqueue(track("b"), "vc", "tc")
	waitStarted(t, f)

	f.driver.stream(0).finish(errBoom)

	if got := waitStarted(t, f); got.Title != "b" {
		t.Fatalf("after mid-stream error: got %q, want %q", got.Title, "b")
	}
	if f.notifier.noticeCount() == 0 {
		t.Fatal("mid-stream error produced no notice")
	}
}

func TestSessionVoiceJoinFailureClosesSession(t *testing.T) {
	f := startTestSession(0)
	f.dialer.err = errBoom

	_, err := f.sess.Enqueue(track("a"), "vc", "tc")
	var verr *VoiceJoinError
	if !errors.As(err, &verr) {
		t.Fatalf("enqueue with failing join: got %v, want VoiceJoinError", err)
	}
	if verr.ChannelID != "vc" {
		t.Fatalf("VoiceJoinError channel: got %q, want %q", verr.ChannelID, "vc")
	}

	waitClosed(t, f)
}

func TestSessionDisconnect(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	f.sess.Enqueue(track("b"), "vc", "tc")
	waitStarted(t, f)

	if err := f.sess.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	waitClosed(t, f)

	if !f.driver.stream(0).wasStopped() {
		t.Fatal("disconnect did not stop the live stream")
	}
	if n := f.handle.disconnectCount(); n != 1 {
		t.Fatalf("voice disconnects: got %d, want 1", n)
	}

	// A resolve that finished after the disconnect finds a closed session.
	if _, err := f.sess.Enqueue(track("late"), "vc", "tc"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("enqueue after disconnect: got %v, want ErrSessionClosed", err)
	}
}

func TestSessionPauseResume(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	waitStarted(t, f)

	if err := f.sess.SetPaused(true); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !f.driver.stream(0).isPaused() {
		t.Fatal("stream not paused")
	}
	if err := f.sess.SetPaused(false); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if f.driver.stream(0).isPaused() {
		t.Fatal("stream still paused after resume")
	}
}

func TestSessionSnapshot(t *testing.T) {
	f := startTestSession(0)

	f.sess.Enqueue(track("a"), "vc", "tc")
	f.sess.Enqueue(track("b"), "vc", "tc")
	f.sess.Enqueue(track("c"), "vc", "tc")
	waitStarted(t, f)

	snap, err := f.sess.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Current == nil || snap.Current.Title != "a" {
		t.Fatalf("snapshot current: got %+v, want a", snap.Current)
	}
	if len(snap.Pending) != 2 || snap.Pending[0].Title != "b" || snap.Pending[1].Title != "c" {
		t.Fatalf("snapshot pending: got %+v, want [b c]", snap.Pending)
	}
}

func TestSessionQueueCap(t *testing.T) {
	f := startTestSession(2)

	f.sess.Enqueue(track("a"), "vc", "tc")
	waitStarted(t, f)
	f.sess.Enqueue(track("b"), "vc", "tc")
	f.sess.Enqueue(track("c"), "vc", "tc")

	if _, err := f.sess.Enqueue(track("d"), "vc", "tc"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("enqueue over cap: got %v, want ErrQueueFull", err)
	}
}
