package core

import (
	"fmt"
	"sort"
	"strings"

	"groovebot/internal/command"
	"groovebot/internal/version"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{"h", "commands"} }
func (c *HelpCommand) Category() string    { return "🛠️ Core" }

func (c *HelpCommand) Run(ctx *command.MessageContext) error {
	byCategory := map[string][]command.Command{}
	for _, cmd := range command.All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** commands (prefix `%s`):\n", version.AppName, ctx.Config.CommandPrefix)
	for _, cat := range categories {
		cmds := byCategory[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

		fmt.Fprintf(&b, "\n%s\n", cat)
		for _, cmd := range cmds {
			fmt.Fprintf(&b, "`%s%s`", ctx.Config.CommandPrefix, cmd.Name())
			if aliases := cmd.Aliases(); len(aliases) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(aliases, ", "))
			}
			fmt.Fprintf(&b, " - %s\n", cmd.Description())
		}
	}
	return ctx.Reply(b.String())
}
