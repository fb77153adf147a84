package music

import (
	"errors"
	"fmt"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
)

type ShuffleCommand struct{}

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the pending queue" }
func (c *ShuffleCommand) Aliases() []string   { return []string{} }
func (c *ShuffleCommand) Category() string    { return "🎵 Music" }

func (c *ShuffleCommand) Run(ctx *command.MessageContext) error {
	n, err := ctx.Engine.Shuffle(ctx.Event.GuildID)
	if err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("The queue is empty.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ %v", err))
	}
	if n < 2 {
		return ctx.Reply("Not enough queued tracks to shuffle.")
	}
	return ctx.Reply(fmt.Sprintf("🔀 Shuffled %d tracks.", n))
}
