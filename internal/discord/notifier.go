package discord

import (
	"log"
	"time"

	"groovebot/internal/music/player"
	"groovebot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// notifier carries playback notices into text channels and records played
// tracks.
type notifier struct {
	dg      *discordgo.Session
	storage *storage.Storage
}

func (n *notifier) Notify(channelID, text string) {
	if channelID == "" {
		return
	}
	if _, err := n.dg.ChannelMessageSend(channelID, text); err != nil {
		log.Println("[WARN] failed to send playback notice:", err)
	}
}

func (n *notifier) TrackStarted(guildID string, track player.TrackDescriptor) {
	if n.storage == nil {
		return
	}
	err := n.storage.AppendTrackToHistory(guildID, storage.TrackRecord{
		Title:       track.Title,
		URL:         track.StreamLocator,
		RequestedBy: track.RequestedBy,
		PlayedAt:    time.Now(),
	})
	if err != nil {
		log.Println("[WARN] failed to record track history:", err)
	}
}
