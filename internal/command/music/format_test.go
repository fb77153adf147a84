package music

import (
	"strings"
	"testing"
	"time"

	"groovebot/internal/music/player"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, ""},
		{7 * time.Second, "`0:07`"},
		{3*time.Minute + 20*time.Second, "`3:20`"},
		{time.Hour + 5*time.Minute + 20*time.Second, "`1:05:20`"},
	}
	for _, c := range cases {
		if got := formatDuration(c.in); got != c.want {
			t.Errorf("formatDuration(%v): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatQueue(t *testing.T) {
	cur := player.TrackDescriptor{Title: "current song", Duration: 3 * time.Minute}
	snap := player.QueueSnapshot{
		Current: &cur,
		Pending: []player.TrackDescriptor{
			{Title: "next song"},
			{Title: "after that"},
		},
	}

	out := formatQueue(snap)
	if !strings.Contains(out, "current song") {
		t.Fatal("output missing the current track")
	}
	if !strings.Contains(out, "1. next song") || !strings.Contains(out, "2. after that") {
		t.Fatalf("output missing numbered pending tracks:\n%s", out)
	}
}

func TestFormatQueueTruncatesLongLists(t *testing.T) {
	snap := player.QueueSnapshot{}
	for i := 0; i < 15; i++ {
		snap.Pending = append(snap.Pending, player.TrackDescriptor{Title: "track"})
	}

	out := formatQueue(snap)
	if !strings.Contains(out, "and 5 more") {
		t.Fatalf("long queue not truncated:\n%s", out)
	}
}

func TestFormatQueueEmpty(t *testing.T) {
	out := formatQueue(player.QueueSnapshot{})
	if !strings.Contains(out, "Nothing is playing") || !strings.Contains(out, "No tracks queued") {
		t.Fatalf("unexpected empty-queue output:\n%s", out)
	}
}
