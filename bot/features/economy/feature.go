package economy

import (
	"arcade/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the daily bonus, transfers and the loan book
type Feature struct {
	economy service.EconomyService
	loans   service.LoanService
}

func New(economy service.EconomyService, loans service.LoanService) *Feature {
	return &Feature{
		economy: economy,
		loans:   loans,
	}
}

// HandleCommand routes the economy slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "daily":
		f.handleDaily(s, i)
	case "give":
		f.handleGive(s, i)
	case "loan":
		f.handleLoan(s, i)
	}
}
