package music

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
)

type QueueCommand struct{}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the current track and pending queue" }
func (c *QueueCommand) Aliases() []string   { return []string{"q"} }
func (c *QueueCommand) Category() string    { return "🎵 Music" }

func (c *QueueCommand) Run(ctx *command.MessageContext) error {
	snap, err := ctx.Engine.Snapshot(ctx.Event.GuildID)
	if err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("The queue is empty.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ %v", err))
	}
	return ctx.Reply(formatQueue(snap))
}

func formatQueue(snap player.QueueSnapshot) string {
	var b strings.Builder

	if snap.Current != nil {
		fmt.Fprintf(&b, "▶️ **%s** %s\n", snap.Current.Title, formatDuration(snap.Current.Duration))
	} else {
		b.WriteString("Nothing is playing right now.\n")
	}

	if len(snap.Pending) == 0 {
		b.WriteString("\nNo tracks queued.")
		return b.String()
	}

	b.WriteString("\n**Up next:**\n")
	const maxListed = 10
	for i, t := range snap.Pending {
		if i == maxListed {
			fmt.Fprintf(&b, "...and %d more", len(snap.Pending)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, t.Title, formatDuration(t.Duration))
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("`%d:%02d:%02d`", h, m, s)
	}
	return fmt.Sprintf("`%d:%02d`", m, s)
}

type NowPlayingCommand struct{}

func (c *NowPlayingCommand) Name() string        { return "nowplaying" }
func (c *NowPlayingCommand) Description() string { return "Show the track currently playing" }
func (c *NowPlayingCommand) Aliases() []string   { return []string{"np"} }
func (c *NowPlayingCommand) Category() string    { return "🎵 Music" }

func (c *NowPlayingCommand) Run(ctx *command.MessageContext) error {
	snap, err := ctx.Engine.Snapshot(ctx.Event.GuildID)
	if err != nil || snap.Current == nil {
		return ctx.Reply("Nothing is playing.")
	}
	cur := snap.Current
	reply := fmt.Sprintf("▶️ **%s** %s", cur.Title, formatDuration(cur.Duration))
	if cur.RequestedBy != "" {
		reply += fmt.Sprintf("\nRequested by %s", cur.RequestedBy)
	}
	return ctx.Reply(reply)
}

type ClearCommand struct{}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Clear queued tracks without stopping playback" }
func (c *ClearCommand) Aliases() []string   { return []string{} }
func (c *ClearCommand) Category() string    { return "🎵 Music" }

func (c *ClearCommand) Run(ctx *command.MessageContext) error {
	n, err := ctx.Engine.ClearPending(ctx.Event.GuildID)
	if err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("The queue is already empty.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ %v", err))
	}
	if n == 0 {
		return ctx.Reply("No queued tracks to clear.")
	}
	return ctx.Reply(fmt.Sprintf("🗑️ Cleared %d queued track(s).", n))
}
