package chat

import (
	"fmt"
	"log"
	"strings"

	"groovebot/internal/command"
)

type ChatCommand struct{}

func (c *ChatCommand) Name() string        { return "chat" }
func (c *ChatCommand) Description() string { return "Talk to the bot" }
func (c *ChatCommand) Aliases() []string   { return []string{"ask"} }
func (c *ChatCommand) Category() string    { return "💬 Chat" }

func (c *ChatCommand) Run(ctx *command.MessageContext) error {
	if ctx.Chat == nil {
		return ctx.Reply("Chat is not configured on this bot.")
	}

	text := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if text == "" {
		return ctx.Reply("Say something after the command, like `" + ctx.Config.CommandPrefix + "chat how are you?`")
	}

	if err := ctx.Session.ChannelTyping(ctx.Event.ChannelID); err != nil {
		log.Println("[WARN] typing indicator failed:", err)
	}

	answer, err := ctx.Chat.Reply(ctx.Event.Author.ID, text)
	if err != nil {
		log.Println("[ERR] chat provider:", err)
		return ctx.Reply("🤐 I have nothing to say right now. Try again later.")
	}

	// Discord rejects messages over 2000 characters.
	const limit = 2000
	for len(answer) > 0 {
		chunk := answer
		if len(chunk) > limit {
			chunk = chunk[:limit]
		}
		answer = answer[len(chunk):]
		if err := ctx.Reply(chunk); err != nil {
			return fmt.Errorf("failed to send chat reply: %w", err)
		}
	}
	return nil
}

type ClearChatCommand struct{}

func (c *ClearChatCommand) Name() string        { return "clearchat" }
func (c *ClearChatCommand) Description() string { return "Forget your chat conversation" }
func (c *ClearChatCommand) Aliases() []string   { return []string{"resetchat"} }
func (c *ClearChatCommand) Category() string    { return "💬 Chat" }

func (c *ClearChatCommand) Run(ctx *command.MessageContext) error {
	if ctx.Chat == nil {
		return ctx.Reply("Chat is not configured on this bot.")
	}
	ctx.Chat.Clear(ctx.Event.Author.ID)
	return ctx.Reply("🧹 Conversation forgotten.")
}
