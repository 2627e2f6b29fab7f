package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the invoking user regardless of whether the
// interaction came from a guild or a DM.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's ID as an int64, or 0 when
// it cannot be parsed.
func InteractionUserID(i *discordgo.InteractionCreate) int64 {
	user := InteractionUser(i)
	if user == nil {
		return 0
	}
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// MessageUserID returns the author ID of a chat message as an int64, or 0
// when it cannot be parsed.
func MessageUserID(m *discordgo.MessageCreate) int64 {
	if m.Author == nil {
		return 0
	}
	id, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// InteractionChannelID returns the interaction's channel ID as an int64,
// or 0 when it cannot be parsed.
func InteractionChannelID(i *discordgo.InteractionCreate) int64 {
	id, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
