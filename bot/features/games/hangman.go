package games

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"arcade/bot/common"
	"arcade/games"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) handleHangman(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Missing hangman subcommand.")
		return
	}

	switch options[0].Name {
	case "start":
		f.handleHangmanStart(s, i)
	case "guess":
		f.handleHangmanGuess(s, i, options[0])
	case "word":
		f.handleHangmanWord(s, i, options[0])
	case "stop":
		f.handleHangmanStop(s, i)
	}
}

func (f *Feature) handleHangmanStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	chatID := common.InteractionChannelID(i)
	playerID := common.InteractionUserID(i)

	view, err := f.games.StartHangman(ctx, chatID, playerID, user.Username)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	respond(s, i, fmt.Sprintf("🪢 **Hangman started!**\n%s\nMistakes: %d/%d",
		formatMask(view.Mask), view.Wrong, view.MaxWrong))
}

func (f *Feature) handleHangmanGuess(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	chatID := common.InteractionChannelID(i)
	playerID := common.InteractionUserID(i)

	var input string
	for _, opt := range sub.Options {
		if opt.Name == "letter" {
			input = opt.StringValue()
		}
	}
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) != 1 {
		common.RespondWithError(s, i, "Guess exactly one letter.")
		return
	}
	letter, _ := utf8.DecodeRuneInString(input)

	move, err := f.games.GuessLetter(ctx, chatID, playerID, user.Username, letter)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, formatMove(user, move))
}

func (f *Feature) handleHangmanWord(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	chatID := common.InteractionChannelID(i)
	playerID := common.InteractionUserID(i)

	var word string
	for _, opt := range sub.Options {
		if opt.Name == "word" {
			word = opt.StringValue()
		}
	}

	move, err := f.games.GuessWord(ctx, chatID, playerID, user.Username, word)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, formatMove(user, move))
}

func (f *Feature) handleHangmanStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	chatID := common.InteractionChannelID(i)

	word, err := f.games.StopHangman(ctx, chatID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, fmt.Sprintf("🪢 Game stopped. The word was **%s**.", word))
}

func formatMove(user *discordgo.User, move *service.HangmanMove) string {
	switch move.Outcome {
	case games.GuessWon:
		message := fmt.Sprintf("🎉 **%s** got it! The word was **%s**.\nReward: **%s coins** + %d XP. Balance: **%s**",
			user.Username, move.Word,
			common.FormatCoins(move.Reward), move.XPReward, common.FormatCoins(move.NewBalance))
		if move.LevelsGained > 0 {
			message += fmt.Sprintf("\n🆙 Level up ×%d!", move.LevelsGained)
		}
		return message

	case games.GuessLost:
		return fmt.Sprintf("💀 Out of attempts! The word was **%s**.", move.Word)

	case games.GuessRepeat:
		return fmt.Sprintf("🔁 Already tried that.\n%s\nMistakes: %d/%d",
			formatMask(move.Mask), move.Wrong, move.MaxWrong)

	case games.GuessMiss:
		return fmt.Sprintf("❌ Nope.\n%s\nMistakes: %d/%d",
			formatMask(move.Mask), move.Wrong, move.MaxWrong)

	default: // GuessHit
		return fmt.Sprintf("✅ Good one!\n%s\nMistakes: %d/%d",
			formatMask(move.Mask), move.Wrong, move.MaxWrong)
	}
}

func formatMask(mask string) string {
	return fmt.Sprintf("`%s`", mask)
}
