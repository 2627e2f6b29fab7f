package games

import (
	"context"
	"fmt"
	"strings"

	"arcade/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bet" {
			bet = opt.IntValue()
		}
	}

	outcome, err := f.games.Spin(ctx, playerID, user.Username, bet)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎰 **[ %s ]**\n", strings.Join(outcome.Reels[:], " | "))
	if outcome.Won {
		fmt.Fprintf(&b, "×%d! ", outcome.Multiplier)
	}
	b.WriteString(common.FormatGameResult(outcome.Won, outcome.Bet, outcome.Payout, outcome.NewBalance))
	if outcome.LevelsGained > 0 {
		fmt.Fprintf(&b, "\n🆙 Level up ×%d!", outcome.LevelsGained)
	}
	respond(s, i, b.String())
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Error responding to game command: %v", err)
	}
}
