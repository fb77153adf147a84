package player

import (
	"errors"
	"math/rand"
)

// ErrQueueFull is returned by Enqueue when the configured cap is reached.
var ErrQueueFull = errors.New("queue is full")

// GuildQueue is the ordered set of pending tracks for one guild plus the
// track currently being streamed. It is owned by exactly one Session and
// only ever touched from that session's goroutine, so it carries no lock.
type GuildQueue struct {
	pending []TrackDescriptor
	current *TrackDescriptor
	maxSize int
}

func NewGuildQueue(maxSize int) *GuildQueue {
	return &GuildQueue{maxSize: maxSize}
}

// Enqueue appends a track and returns its 1-based queue position.
func (q *GuildQueue) Enqueue(track TrackDescriptor) (int, error) {
	if q.maxSize > 0 && len(q.pending) >= q.maxSize {
		return 0, ErrQueueFull
	}
	q.pending = append(q.pending, track)
	return len(q.pending), nil
}

// PopNext removes the head of the pending list and makes it current.
// With nothing pending it clears current and reports false.
func (q *GuildQueue) PopNext() (TrackDescriptor, bool) {
	if len(q.pending) == 0 {
		q.current = nil
		return TrackDescriptor{}, false
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.current = &next
	return next, true
}

func (q *GuildQueue) PeekCurrent() (TrackDescriptor, bool) {
	if q.current == nil {
		return TrackDescriptor{}, false
	}
	return *q.current, true
}

// IsEmpty reports whether both the pending list and current are empty.
func (q *GuildQueue) IsEmpty() bool {
	return q.current == nil && len(q.pending) == 0
}

// Clear drops all pending tracks and the current one. Used on disconnect.
func (q *GuildQueue) Clear() {
	q.pending = nil
	q.current = nil
}

// ClearPending drops only the pending tracks, leaving current untouched.
// Returns how many tracks were dropped.
func (q *GuildQueue) ClearPending() int {
	n := len(q.pending)
	q.pending = nil
	return n
}

// ShufflePending randomizes the order of pending tracks. Current is not
// part of the shuffle. Returns the number of tracks shuffled.
func (q *GuildQueue) ShufflePending() int {
	rand.Shuffle(len(q.pending), func(i, j int) {
		q.pending[i], q.pending[j] = q.pending[j], q.pending[i]
	})
	return len(q.pending)
}

// Pending returns a copy of the pending list.
func (q *GuildQueue) Pending() []TrackDescriptor {
	out := make([]TrackDescriptor, len(q.pending))
	copy(out, q.pending)
	return out
}
