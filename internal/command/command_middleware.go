package command

import (
	"log"
	"time"

	"groovebot/internal/storage"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx *MessageContext) error
}

func (w *wrappedCommand) Run(ctx *MessageContext) error {
	return w.wrap(ctx)
}

// WithGuildOnly rejects commands sent outside a guild, such as DMs.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *MessageContext) error {
				if ctx.Event.GuildID == "" {
					return ctx.Reply("This command only works in a server.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger appends each execution to the guild's command history.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *MessageContext) error {
				if ctx.Storage != nil && ctx.Event.GuildID != "" {
					err := ctx.Storage.AppendCommandToHistory(ctx.Event.GuildID, storage.CommandRecord{
						ChannelID: ctx.Event.ChannelID,
						UserID:    ctx.Event.Author.ID,
						Username:  ctx.Event.Author.Username,
						Command:   cmd.Name(),
						Datetime:  time.Now(),
					})
					if err != nil {
						log.Println("[WARN] failed to log command:", err)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
