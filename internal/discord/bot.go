package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"groovebot/internal/ai"
	"groovebot/internal/chat"
	"groovebot/internal/command"
	chatcmd "groovebot/internal/command/chat"
	corecmd "groovebot/internal/command/core"
	musiccmd "groovebot/internal/command/music"
	"groovebot/internal/config"
	"groovebot/internal/music/driver"
	"groovebot/internal/music/player"
	"groovebot/internal/music/resolver"
	"groovebot/internal/storage"
	"groovebot/internal/version"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord gateway to the command registry and the playback
// engine.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	engine  *player.Engine
	chat    *chat.Manager
}

// StartBot connects to Discord and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:      dg,
		cfg:     cfg,
		storage: store,
	}

	b.engine = player.NewEngine(
		resolver.NewYouTube(),
		&voiceDialer{dg: dg},
		driver.NewFFmpeg(),
		&notifier{dg: dg, storage: store},
		cfg.MusicMaxQueue,
	)

	provider, err := ai.New(cfg)
	if err != nil {
		log.Println("[WARN] Chat disabled:", err)
	} else {
		b.chat = chat.NewManager(provider, cfg.CommandPrefix)
	}

	b.registerCommands()
	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.engine.Shutdown()
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
}

func (b *Bot) registerCommands() {
	logged := []command.Middleware{command.WithCommandLogger()}
	guildOnly := []command.Middleware{command.WithGuildOnly(), command.WithCommandLogger()}

	command.RegisterCommand(&musiccmd.PlayCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.SkipCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.StopCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.QueueCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.NowPlayingCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.ClearCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.PauseCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.ResumeCommand{}, guildOnly...)
	command.RegisterCommand(&musiccmd.ShuffleCommand{}, guildOnly...)

	command.RegisterCommand(&chatcmd.ChatCommand{}, logged...)
	command.RegisterCommand(&chatcmd.ClearChatCommand{}, logged...)

	command.RegisterCommand(&corecmd.HelpCommand{}, logged...)
	command.RegisterCommand(&corecmd.EchoCommand{}, logged...)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ %s %s is running as %s in %d guild(s).",
		version.AppName, version.Version, r.User.Username, len(r.Guilds))
}

// onMessageCreate dispatches prefix commands. The first token after the
// prefix names the command, the rest become its arguments.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.cfg.CommandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])

	cmd, ok := command.Get(name)
	if !ok {
		_, _ = s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("Unknown command `%s`. Try `%shelp`.", name, b.cfg.CommandPrefix))
		return
	}

	ctx := &command.MessageContext{
		Session: s,
		Event:   m,
		Args:    fields[1:],
		Config:  b.cfg,
		Storage: b.storage,
		Engine:  b.engine,
		Chat:    b.chat,
	}

	if err := cmd.Run(ctx); err != nil {
		log.Printf("[ERR] Command %s failed: %v", cmd.Name(), err)
		_, _ = s.ChannelMessageSend(m.ChannelID, "There was an error executing that command!")
	}
}
