package economy

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"arcade/bot/common"
	"arcade/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	claim, err := f.economy.ClaimDaily(ctx, playerID, user.Username)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	message := fmt.Sprintf("🎁 Daily bonus claimed: **%s coins** and **%d XP**. New balance: **%s**",
		common.FormatCoins(claim.Reward), claim.XP, common.FormatCoins(claim.NewBalance))
	if claim.LevelsGained > 0 {
		message += fmt.Sprintf("\n🆙 You leveled up ×%d!", claim.LevelsGained)
	}
	respond(s, i, message)
}

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	fromID := common.InteractionUserID(i)

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}

	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	toID, err := strconv.ParseInt(recipient.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipient.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.economy.Transfer(ctx, fromID, toID, user.Username, recipient.Username, amount)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("✅ Sent **%s coins** to <@%s>. Your balance: **%s**",
		common.FormatCoins(result.Amount), recipient.ID, common.FormatCoins(result.NewBalance)))
}

func (f *Feature) handleLoan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Missing loan subcommand.")
		return
	}

	switch options[0].Name {
	case "take":
		f.handleLoanTake(s, i, options[0])
	case "list":
		f.handleLoanList(s, i)
	case "repay":
		f.handleLoanRepay(s, i, options[0])
	}
}

func (f *Feature) handleLoanTake(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	var amount int64
	for _, opt := range sub.Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	loan, newBalance, err := f.loans.TakeLoan(ctx, playerID, user.Username, amount)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("🏦 Loan **#%d** issued: **%s coins** at 7%%/day compounding. New balance: **%s**",
		loan.ID, common.FormatCoins(loan.Principal), common.FormatCoins(newBalance)))
}

func (f *Feature) handleLoanList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	statements, err := f.loans.ListLoans(ctx, playerID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	if len(statements) == 0 {
		respond(s, i, "🏦 You have no outstanding loans.")
		return
	}

	respond(s, i, formatStatements(statements))
}

func (f *Feature) handleLoanRepay(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	var loanID int64
	for _, opt := range sub.Options {
		if opt.Name == "id" {
			loanID = opt.IntValue()
		}
	}

	result, err := f.loans.Repay(ctx, playerID, loanID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("🏦 Loan **#%d** repaid for **%s coins**. New balance: **%s**",
		result.LoanID, common.FormatCoins(result.Charged), common.FormatCoins(result.NewBalance)))
}

func formatStatements(statements []models.LoanStatement) string {
	var b strings.Builder
	b.WriteString("🏦 **Your loans**\n")
	var total int64
	for _, st := range statements {
		fmt.Fprintf(&b, "`#%d` borrowed **%s**, owe **%s** (taken %s)\n",
			st.Loan.ID, common.FormatCoins(st.Loan.Principal), common.FormatCoins(st.Debt),
			fmt.Sprintf("<t:%d:R>", st.Loan.CreatedAt.Unix()))
		total += st.Debt
	}
	fmt.Fprintf(&b, "Total owed: **%s coins**", common.FormatCoins(total))
	return b.String()
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Error responding to economy command: %v", err)
	}
}
