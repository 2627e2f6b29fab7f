package games

import (
	"context"
	"fmt"

	"arcade/bot/common"
	"arcade/games"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBlackjackStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bet" {
			bet = opt.IntValue()
		}
	}

	round, err := f.games.StartBlackjack(ctx, playerID, user.Username, bet)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respondRound(s, i, round)
}

func (f *Feature) handleBlackjackHit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	round, err := f.games.Hit(ctx, playerID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	updateRound(s, i, round)
}

func (f *Feature) handleBlackjackStand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	round, err := f.games.Stand(ctx, playerID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	updateRound(s, i, round)
}

func respondRound(s *discordgo.Session, i *discordgo.InteractionCreate, round *service.BlackjackRound) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: roundResponseData(round),
	})
	if err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
	}
}

// updateRound edits the round message in place so hit/stand feel like one
// evolving table.
func updateRound(s *discordgo.Session, i *discordgo.InteractionCreate, round *service.BlackjackRound) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: roundResponseData(round),
	})
	if err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}

func roundResponseData(round *service.BlackjackRound) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildRoundEmbed(round)},
	}
	if !round.Resolved {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Hit", Style: discordgo.PrimaryButton, CustomID: blackjackHitID},
					discordgo.Button{Label: "Stand", Style: discordgo.SecondaryButton, CustomID: blackjackStandID},
				},
			},
		}
	} else {
		// Terminal message keeps the table but drops the buttons
		data.Components = []discordgo.MessageComponent{}
	}
	return data
}

func buildRoundEmbed(round *service.BlackjackRound) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🃏 Blackjack · bet %s", common.FormatCoins(round.Bet)),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   fmt.Sprintf("Your hand (%d)", round.PlayerValue),
				Value:  formatHand(round.PlayerHand),
				Inline: true,
			},
			{
				Name:   dealerFieldName(round),
				Value:  formatDealerHand(round),
				Inline: true,
			},
		},
	}

	if round.Resolved {
		embed.Description = resolutionLine(round)
		if round.Won {
			embed.Color = common.ColorSuccess
		} else if !round.Push {
			embed.Color = common.ColorError
		}
	}
	return embed
}

func resolutionLine(round *service.BlackjackRound) string {
	switch {
	case round.Natural:
		return fmt.Sprintf("✨ **Blackjack!** Paid **%s coins** (+%d XP). Balance: **%s**",
			common.FormatCoins(round.Payout), round.XPReward, common.FormatCoins(round.NewBalance))
	case round.Push:
		return fmt.Sprintf("🤝 **Push.** Bet returned. Balance: **%s**", common.FormatCoins(round.NewBalance))
	case round.Won:
		return common.FormatGameResult(true, round.Bet, round.Payout, round.NewBalance)
	default:
		return common.FormatGameResult(false, round.Bet, 0, round.NewBalance)
	}
}

// dealerFieldName hides the dealer total while the round is live; only the
// up card is public.
func dealerFieldName(round *service.BlackjackRound) string {
	if round.Resolved {
		return fmt.Sprintf("Dealer (%d)", round.DealerValue)
	}
	return "Dealer"
}

func formatDealerHand(round *service.BlackjackRound) string {
	if round.Resolved || len(round.DealerHand) == 0 {
		return formatHand(round.DealerHand)
	}
	return round.DealerHand[0].String() + " 🂠"
}

func formatHand(hand []games.Card) string {
	if len(hand) == 0 {
		return "—"
	}
	return games.HandString(hand)
}
