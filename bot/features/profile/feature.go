package profile

import (
	"arcade/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the profile and economy leaderboard commands
type Feature struct {
	stats service.StatsService
}

func New(stats service.StatsService) *Feature {
	return &Feature{stats: stats}
}

// HandleCommand routes the profile slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "profile":
		f.handleProfile(s, i)
	case "top":
		f.handleTop(s, i)
	}
}
