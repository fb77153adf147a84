package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommandHistoryRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	err := s.AppendCommandToHistory("guild-1", CommandRecord{
		ChannelID: "chan-1",
		UserID:    "user-1",
		Username:  "alice",
		Command:   "play",
		Datetime:  time.Now(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	history, err := s.FetchCommandHistory("guild-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(history) != 1 || history[0].Command != "play" || history[0].Username != "alice" {
		t.Fatalf("history: got %+v", history)
	}
}

func TestCommandHistoryIsCapped(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		if err := s.AppendCommandToHistory("guild-1", CommandRecord{Command: "skip"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := s.FetchCommandHistory("guild-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("history length: got %d, want %d", len(history), commandHistoryLimit)
	}
}

func TestTrackHistoryPerGuild(t *testing.T) {
	s := newTestStorage(t)

	s.AppendTrackToHistory("guild-1", TrackRecord{Title: "one", PlayedAt: time.Now()})
	s.AppendTrackToHistory("guild-2", TrackRecord{Title: "two", PlayedAt: time.Now()})

	h1, err := s.FetchTrackHistory("guild-1")
	if err != nil {
		t.Fatalf("fetch guild-1: %v", err)
	}
	if len(h1) != 1 || h1[0].Title != "one" {
		t.Fatalf("guild-1 history: got %+v", h1)
	}

	h2, _ := s.FetchTrackHistory("guild-2")
	if len(h2) != 1 || h2[0].Title != "two" {
		t.Fatalf("guild-2 history: got %+v", h2)
	}
}
