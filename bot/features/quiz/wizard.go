package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"arcade/bot/common"
	"arcade/games"
	"arcade/scope"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	prompt, err := f.quizzes.StartWizard(ctx, playerID, user.Username)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	respond(s, i, "📝 **Quiz wizard started.** Answer my prompts in this channel; `/quiz cancel` discards the draft.\n"+
		wizardPromptText(prompt))
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	if err := f.quizzes.CancelWizard(ctx, playerID); err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, "📝 Draft discarded.")
}

// HandleAuthorMessage feeds a chat message into the author's wizard, if one
// is active. Messages from users without a draft are ignored.
func (f *Feature) HandleAuthorMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx := context.Background()
	playerID := common.MessageUserID(m)
	if playerID == 0 {
		return
	}

	prompt, err := f.quizzes.AuthorInput(ctx, playerID, m.Content)
	if errors.Is(err, scope.ErrSessionNotFound) {
		return
	}
	if err != nil {
		reply(s, m, "❌ "+wizardErrorText(err))
		return
	}

	if prompt.Created != nil {
		reply(s, m, fmt.Sprintf("📝 **Quiz saved!** Play it with `/quiz play id:%d`.", prompt.Created.ID))
		return
	}
	reply(s, m, wizardPromptText(prompt))
}

func wizardPromptText(prompt *service.WizardPrompt) string {
	switch prompt.State {
	case games.WizardAwaitingName:
		return "What should the quiz be called?"
	case games.WizardAwaitingQuestion:
		return "Type the next question."
	case games.WizardAwaitingAnswers:
		return "Now the answer options, separated by `;` or newlines (2 to 4 of them)."
	case games.WizardAwaitingCorrectOption:
		return fmt.Sprintf("Which one is correct? (%s)", optionLetters(len(prompt.Options)))
	case games.WizardAwaitingMore:
		return "Question saved. Type `add` for another question or `done` to finish."
	default:
		return ""
	}
}

func wizardErrorText(err error) string {
	switch {
	case errors.Is(err, games.ErrEmptyInput):
		return "That can't be empty, try again."
	case errors.Is(err, games.ErrTooFewOptions):
		return "I need at least 2 options, separated by `;` or newlines."
	case errors.Is(err, games.ErrInvalidOption):
		return "Pick one of the option letters you just entered."
	case errors.Is(err, games.ErrNoQuestions):
		return "Add at least one question before finishing."
	case errors.Is(err, games.ErrWizardState):
		return "I didn't get that. Type `add` or `done`."
	default:
		return common.UserMessage(err)
	}
}

func optionLetters(n int) string {
	letters := []string{"A", "B", "C", "D"}
	if n > len(letters) {
		n = len(letters)
	}
	return strings.Join(letters[:n], "/")
}

func reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
		log.Errorf("Error sending wizard reply: %v", err)
	}
}
