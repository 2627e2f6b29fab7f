package games

import (
	"arcade/service"

	"github.com/bwmarrin/discordgo"
)

// Component custom IDs for the blackjack action row
const (
	blackjackHitID   = "blackjack_hit"
	blackjackStandID = "blackjack_stand"
)

// Feature handles the arcade game commands: hangman, blackjack and slots
type Feature struct {
	games service.GameService
}

func New(games service.GameService) *Feature {
	return &Feature{games: games}
}

// HandleCommand routes the game slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "hangman":
		f.handleHangman(s, i)
	case "blackjack":
		f.handleBlackjackStart(s, i)
	case "slots":
		f.handleSlots(s, i)
	}
}

// HandleInteraction routes the blackjack hit/stand buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.MessageComponentData().CustomID {
	case blackjackHitID:
		f.handleBlackjackHit(s, i)
	case blackjackStandID:
		f.handleBlackjackStand(s, i)
	}
}
