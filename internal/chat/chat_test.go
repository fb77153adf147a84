package chat

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"groovebot/internal/ai"
)

type scriptedProvider struct {
	err   error
	calls [][]ai.Message
}

func (p *scriptedProvider) Generate(messages []ai.Message) (string, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return "", p.err
	}
	return fmt.Sprintf("reply %d", len(p.calls)), nil
}

func TestReplyKeepsConversation(t *testing.T) {
	p := &scriptedProvider{}
	m := NewManager(p, "s!")

	answer, err := m.Reply("user-1", "hello")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if answer != "reply 1" {
		t.Fatalf("answer: got %q", answer)
	}
	if m.HistoryLen("user-1") != 2 {
		t.Fatalf("history: got %d messages, want 2", m.HistoryLen("user-1"))
	}

	m.Reply("user-1", "again")

	// Second request carries the first exchange plus the system prompt.
	last := p.calls[len(p.calls)-1]
	if len(last) != 4 {
		t.Fatalf("second request: got %d messages, want 4", len(last))
	}
	if last[0].Role != "system" {
		t.Fatalf("first message role: got %q, want system", last[0].Role)
	}
	if !strings.Contains(last[0].Content, "s!help") {
		t.Fatal("system prompt does not mention the help command")
	}
	if last[1].Content != "hello" || last[2].Content != "reply 1" {
		t.Fatalf("history not carried: %+v", last[1:3])
	}
}

func TestReplyHistoryIsBounded(t *testing.T) {
	p := &scriptedProvider{}
	m := NewManager(p, "s!")

	for i := 0; i < 20; i++ {
		if _, err := m.Reply("user-1", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
	}

	if got := m.HistoryLen("user-1"); got != historyLimit {
		t.Fatalf("history length: got %d, want %d", got, historyLimit)
	}
}

func TestReplyErrorLeavesHistoryUntouched(t *testing.T) {
	p := &scriptedProvider{err: errors.New("upstream down")}
	m := NewManager(p, "s!")

	if _, err := m.Reply("user-1", "hello"); err == nil {
		t.Fatal("expected provider error")
	}
	if m.HistoryLen("user-1") != 0 {
		t.Fatal("failed reply was recorded in history")
	}
}

func TestConversationsAreIsolatedPerUser(t *testing.T) {
	p := &scriptedProvider{}
	m := NewManager(p, "s!")

	m.Reply("user-1", "hello")
	if m.HistoryLen("user-2") != 0 {
		t.Fatal("conversation leaked between users")
	}

	m.Clear("user-1")
	if m.HistoryLen("user-1") != 0 {
		t.Fatal("Clear left history behind")
	}
}
