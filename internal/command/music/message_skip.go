package music

import (
	"errors"
	"fmt"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
)

type SkipCommand struct{}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current track" }
func (c *SkipCommand) Aliases() []string   { return []string{"next", "n"} }
func (c *SkipCommand) Category() string    { return "🎵 Music" }

func (c *SkipCommand) Run(ctx *command.MessageContext) error {
	title, err := ctx.Engine.Skip(ctx.Event.GuildID)
	if err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("Nothing is playing.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ Skip failed: %v", err))
	}
	return ctx.Reply(fmt.Sprintf("⏭️ Skipped **%s**", title))
}
