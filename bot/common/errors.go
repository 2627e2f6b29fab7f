package common

import (
	"errors"
	"fmt"

	"arcade/scope"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// UserMessage translates an engine error into a message fit for the
// Discord user. Unknown errors get a generic message; the caller is
// expected to log the original.
func UserMessage(err error) string {
	var cooldown *service.DailyCooldownError
	if errors.As(err, &cooldown) {
		return fmt.Sprintf("Daily bonus already claimed. Come back in %s.", FormatDuration(cooldown.Remaining))
	}

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return "Amount must be positive."
	case errors.Is(err, service.ErrInsufficientFunds):
		return "You don't have enough coins for that."
	case errors.Is(err, service.ErrCapExceeded):
		return "That's over the loan cap."
	case errors.Is(err, service.ErrLoanNotFound):
		return "No such loan on your account."
	case errors.Is(err, service.ErrQuizNotFound):
		return "No quiz with that ID."
	case errors.Is(err, service.ErrQuizEmpty):
		return "That quiz has no questions."
	case errors.Is(err, service.ErrQuizForbidden):
		return "Only the quiz's creator can do that."
	case errors.Is(err, service.ErrSelfTransfer):
		return "You cannot send coins to yourself."
	case errors.Is(err, scope.ErrSessionConflict):
		return "A game is already running here. Finish or stop it first."
	case errors.Is(err, scope.ErrSessionNotFound):
		return "No active game to act on."
	default:
		return "Something went wrong. Please try again later."
	}
}

// RespondWithError sends an error message as an ephemeral interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithServiceError logs the engine error and responds with its
// user-facing translation.
func RespondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.WithFields(log.Fields{
		"user_id": InteractionUserID(i),
		"command": i.ApplicationCommandData().Name,
	}).WithError(err).Error("Command failed")
	RespondWithError(s, i, UserMessage(err))
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}
