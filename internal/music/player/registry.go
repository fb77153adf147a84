package player

import (
	"log"
	"sync"
)

// SessionRegistry maps guild IDs to their single live session. It is
// constructed once at startup and passed to whoever needs it; there is no
// package-level instance.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the live session for a guild, constructing one via
// factory when absent. Concurrent callers for the same guild observe the
// same session; the factory runs at most once per live entry.
func (r *SessionRegistry) GetOrCreate(guildID string, factory func() *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[guildID]; ok {
		return s
	}
	s := factory()
	r.sessions[guildID] = s
	go s.run()
	log.Printf("[Registry] created session for guild %s", guildID)
	return s
}

// Get returns the session for a guild, or nil when none is live.
func (r *SessionRegistry) Get(guildID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[guildID]
}

// Remove drops a guild's entry. Removing an absent guild is a no-op.
func (r *SessionRegistry) Remove(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, guildID)
}

// remove drops the entry only if it still points at the given session, so
// a slow teardown cannot evict a successor session for the same guild.
func (r *SessionRegistry) remove(guildID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[guildID] == s {
		delete(r.sessions, guildID)
	}
}

// Shutdown disconnects every live session, best effort.
func (r *SessionRegistry) Shutdown() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		if err := s.Disconnect(); err != nil {
			log.Printf("[WARN] Registry: shutdown disconnect for guild %s: %v", s.guildID, err)
		}
	}
}
