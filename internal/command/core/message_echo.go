package core

import (
	"strings"

	"groovebot/internal/command"
)

type EchoCommand struct{}

func (c *EchoCommand) Name() string        { return "echo" }
func (c *EchoCommand) Description() string { return "Repeat a message back" }
func (c *EchoCommand) Aliases() []string   { return []string{} }
func (c *EchoCommand) Category() string    { return "🛠️ Core" }

func (c *EchoCommand) Run(ctx *command.MessageContext) error {
	text := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if text == "" {
		return ctx.Reply("Nothing to echo.")
	}
	return ctx.Reply(text)
}
