package player

import (
	"context"
	"errors"
)

// Resolver turns a free-text query or URL into a playable track descriptor.
// Resolution can be slow; it always runs outside any session's goroutine.
type Resolver interface {
	Resolve(ctx context.Context, query, requestedBy string) (TrackDescriptor, error)
}

// PlayReceipt is what a successful play request reports back. Position is
// the track's 1-based place in the pending queue, or 0 when playback starts
// immediately.
type PlayReceipt struct {
	Position int
	Title    string
}

// Engine is the command layer's entry point into music playback. It owns
// the session registry and the shared resolver/driver wiring.
type Engine struct {
	registry *SessionRegistry
	resolver Resolver
	dialer   VoiceDialer
	driver   Driver
	notifier Notifier
	queueCap int
}

func NewEngine(resolver Resolver, dialer VoiceDialer, driver Driver, notifier Notifier, queueCap int) *Engine {
	return &Engine{
		registry: NewSessionRegistry(),
		resolver: resolver,
		dialer:   dialer,
		driver:   driver,
		notifier: notifier,
		queueCap: queueCap,
	}
}

// Play resolves the query and enqueues the result on the guild's session,
// creating the session when the guild had none before the resolve started.
//
// Two edge cases fall out of the ordering here: a failed resolve never
// creates a session, and a session disconnected while the resolve was in
// flight swallows the late result (ErrSessionClosed) instead of letting it
// restart playback through a fresh session.
func (e *Engine) Play(ctx context.Context, guildID, voiceChannelID, textChannelID, query, requestedBy string) (PlayReceipt, error) {
	existing := e.registry.Get(guildID)

	track, err := e.resolver.Resolve(ctx, query, requestedBy)
	if err != nil {
		return PlayReceipt{}, err
	}

	if existing != nil {
		pos, err := existing.Enqueue(track, voiceChannelID, textChannelID)
		if err != nil {
			return PlayReceipt{}, err
		}
		return PlayReceipt{Position: pos, Title: track.Title}, nil
	}

	sess := e.registry.GetOrCreate(guildID, func() *Session {
		return e.newSession(guildID)
	})
	pos, err := sess.Enqueue(track, voiceChannelID, textChannelID)
	if err != nil {
		return PlayReceipt{}, err
	}
	return PlayReceipt{Position: pos, Title: track.Title}, nil
}

func (e *Engine) newSession(guildID string) *Session {
	return newSession(guildID, e.queueCap, e.dialer, e.driver, e.notifier, func(s *Session) {
		e.registry.remove(guildID, s)
	})
}

// Skip advances the guild's queue by one. ErrNothingPlaying when the guild
// has no session or no current track.
func (e *Engine) Skip(guildID string) (string, error) {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return "", ErrNothingPlaying
	}
	title, err := sess.Skip()
	if errors.Is(err, ErrSessionClosed) {
		return "", ErrNothingPlaying
	}
	return title, err
}

// Disconnect tears down the guild's session. ErrNothingPlaying when there
// is none.
func (e *Engine) Disconnect(guildID string) error {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return ErrNothingPlaying
	}
	if err := sess.Disconnect(); err != nil && !errors.Is(err, ErrSessionClosed) {
		return err
	}
	return nil
}

func (e *Engine) Snapshot(guildID string) (QueueSnapshot, error) {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return QueueSnapshot{}, ErrNothingPlaying
	}
	snap, err := sess.Snapshot()
	if errors.Is(err, ErrSessionClosed) {
		return QueueSnapshot{}, ErrNothingPlaying
	}
	return snap, err
}

func (e *Engine) SetPaused(guildID string, paused bool) error {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return ErrNothingPlaying
	}
	err := sess.SetPaused(paused)
	if errors.Is(err, ErrSessionClosed) {
		return ErrNothingPlaying
	}
	return err
}

func (e *Engine) Shuffle(guildID string) (int, error) {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return 0, ErrNothingPlaying
	}
	n, err := sess.Shuffle()
	if errors.Is(err, ErrSessionClosed) {
		return 0, ErrNothingPlaying
	}
	return n, err
}

func (e *Engine) ClearPending(guildID string) (int, error) {
	sess := e.registry.Get(guildID)
	if sess == nil {
		return 0, ErrNothingPlaying
	}
	n, err := sess.ClearPending()
	if errors.Is(err, ErrSessionClosed) {
		return 0, ErrNothingPlaying
	}
	return n, err
}

// Registry exposes the underlying session registry, mainly for shutdown.
func (e *Engine) Registry() *SessionRegistry { return e.registry }

// Shutdown disconnects all sessions.
func (e *Engine) Shutdown() { e.registry.Shutdown() }
