package profile

import (
	"context"
	"fmt"
	"strings"

	"arcade/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	account, loans, err := f.stats.GetProfile(ctx, playerID, user.Username)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	var debt int64
	for _, st := range loans {
		debt += st.Debt
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("👤 %s", account.DisplayName),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: common.FormatCoins(account.Balance) + " coins", Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d (%d XP)", account.Level, account.XP), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW / %dL of %d (%.0f%%)",
				account.Wins, account.Losses, account.GamesPlayed, account.WinRate()*100), Inline: true},
		},
	}
	if debt > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Debt",
			Value:  fmt.Sprintf("%s coins across %d loans", common.FormatCoins(debt), len(loans)),
			Inline: true,
		})
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Error responding to profile command: %v", err)
	}
}

func (f *Feature) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	entries, err := f.stats.GetLeaderboard(ctx, 10)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	if len(entries) == 0 {
		respond(s, i, "🏆 Nobody here yet.")
		return
	}

	var b strings.Builder
	b.WriteString("🏆 **Arcade leaderboard**\n")
	for idx, entry := range entries {
		fmt.Fprintf(&b, "%s **%s** · level %d · %s coins · %d wins\n",
			common.MedalForRank(idx+1), entry.DisplayName, entry.Level,
			common.FormatCoins(entry.Balance), entry.Wins)
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
		log.Errorf("Error responding to profile command: %v", err)
	}
}
