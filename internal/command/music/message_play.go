package music

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
	"groovebot/internal/music/resolver"
)

type PlayCommand struct{}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a track or add it to the queue" }
func (c *PlayCommand) Aliases() []string   { return []string{"p"} }
func (c *PlayCommand) Category() string    { return "🎵 Music" }

func (c *PlayCommand) Run(ctx *command.MessageContext) error {
	query := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if query == "" {
		return ctx.Reply("Usage: `" + ctx.Config.CommandPrefix + "play <link or search query>`")
	}

	channelID, err := findUserVoiceChannel(ctx)
	if err != nil {
		return ctx.Reply("Join a voice channel first.")
	}

	resolveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := ctx.Engine.Play(
		resolveCtx,
		ctx.Event.GuildID,
		channelID,
		ctx.Event.ChannelID,
		query,
		ctx.Event.Author.Username,
	)
	if err != nil {
		return ctx.Reply(playErrorText(query, err))
	}

	if receipt.Position > 0 {
		return ctx.Reply(fmt.Sprintf("➕ Queued **%s** (position %d)", receipt.Title, receipt.Position))
	}
	return nil
}

func playErrorText(query string, err error) string {
	var rerr *resolver.Error
	if errors.As(err, &rerr) {
		switch rerr.Kind {
		case resolver.KindNotFound:
			return fmt.Sprintf("🔍 Nothing found for `%s`.", query)
		case resolver.KindUnsupported:
			return fmt.Sprintf("🚫 I can't play `%s`. Try a YouTube link or a search query.", query)
		default:
			return "⚠️ Couldn't reach the source right now. Try again in a moment."
		}
	}

	var verr *player.VoiceJoinError
	if errors.As(err, &verr) {
		return "🔇 Couldn't join your voice channel. Check my permissions."
	}

	if errors.Is(err, player.ErrQueueFull) {
		return "🈵 The queue is full. Wait for some tracks to finish first."
	}
	if errors.Is(err, player.ErrSessionClosed) {
		return "⏹️ The player disconnected while your track was being looked up."
	}
	return fmt.Sprintf("⚠️ Playback error: %v", err)
}
