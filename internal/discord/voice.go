package discord

import (
	"groovebot/internal/music/player"

	"github.com/bwmarrin/discordgo"
)

// voiceDialer adapts discordgo voice joins to the player's dialer contract.
type voiceDialer struct {
	dg *discordgo.Session
}

func (d *voiceDialer) Join(guildID, channelID string) (player.VoiceHandle, error) {
	vc, err := d.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return &voiceHandle{vc: vc}, nil
}

type voiceHandle struct {
	vc *discordgo.VoiceConnection
}

func (h *voiceHandle) Speaking(on bool) error  { return h.vc.Speaking(on) }
func (h *voiceHandle) OpusSend() chan<- []byte { return h.vc.OpusSend }
func (h *voiceHandle) Disconnect() error       { return h.vc.Disconnect() }
