package command

import (
	"groovebot/internal/chat"
	"groovebot/internal/config"
	"groovebot/internal/music/player"
	"groovebot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	Run(ctx *MessageContext) error
}

// MessageContext carries everything a prefix command needs to run.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Args    []string
	Config  *config.Config
	Storage *storage.Storage
	Engine  *player.Engine
	Chat    *chat.Manager
}

// Reply sends a plain text message to the channel the command came from.
func (ctx *MessageContext) Reply(text string) error {
	_, err := ctx.Session.ChannelMessageSend(ctx.Event.ChannelID, text)
	return err
}
