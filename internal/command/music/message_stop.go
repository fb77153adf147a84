package music

import (
	"errors"
	"fmt"

	"groovebot/internal/command"
	"groovebot/internal/music/player"
)

type StopCommand struct{}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback, clear the queue and leave voice" }
func (c *StopCommand) Aliases() []string   { return []string{"leave", "dc", "disconnect"} }
func (c *StopCommand) Category() string    { return "🎵 Music" }

func (c *StopCommand) Run(ctx *command.MessageContext) error {
	err := ctx.Engine.Disconnect(ctx.Event.GuildID)
	if err != nil {
		if errors.Is(err, player.ErrNothingPlaying) {
			return ctx.Reply("I'm not connected to voice.")
		}
		return ctx.Reply(fmt.Sprintf("⚠️ Stop failed: %v", err))
	}
	return ctx.Reply("⏹️ Stopped playback and left the voice channel.")
}
