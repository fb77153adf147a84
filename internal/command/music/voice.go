package music

import (
	"errors"
	"fmt"

	"groovebot/internal/command"
)

// findUserVoiceChannel returns the voice channel the invoking user sits in.
func findUserVoiceChannel(ctx *command.MessageContext) (string, error) {
	guild, err := ctx.Session.State.Guild(ctx.Event.GuildID)
	if err != nil {
		return "", fmt.Errorf("error retrieving guild: %w", err)
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == ctx.Event.Author.ID {
			return vs.ChannelID, nil
		}
	}
	return "", errors.New("user not in any voice channel")
}
