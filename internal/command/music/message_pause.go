package music

import (
	"errors"
	"fmt"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
)

type PauseCommand struct{}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause the current track" }
func (c *PauseCommand) Aliases() []string   { return []string{} }
func (c *PauseCommand) Category() string    { return "🎵 Music" }

func (c *PauseCommand) Run(ctx *command.MessageContext) error {
	if err := ctx.Engine.SetPaused(ctx.Event.GuildID, true); err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("Nothing is playing.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ %v", err))
	}
	return ctx.Reply("⏸️ Paused.")
}

type ResumeCommand struct{}

func (c *ResumeCommand) Name() string        { return "resume" }
func (c *ResumeCommand) Description() string { return "Resume a paused track" }
func (c *ResumeCommand) Aliases() []string   { return []string{"unpause"} }
func (c *ResumeCommand) Category() string    { return "🎵 Music" }

func (c *ResumeCommand) Run(ctx *command.MessageContext) error {
	if err := ctx.Engine.SetPaused(ctx.Event.GuildID, false); err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("Nothing is playing.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ %v", err))
	}
	return ctx.Reply("▶️ Resumed.")
}
