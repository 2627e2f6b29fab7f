package quiz

import (
	"strings"

	"arcade/leaderboard"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
)

// answerPrefix heads the custom IDs of quiz answer buttons; the option
// letter follows it.
const answerPrefix = "quiz_answer_"

// Feature handles quiz play, authoring and browsing
type Feature struct {
	quizzes service.QuizService
	board   *leaderboard.Board // optional fast path for /quiz top
}

func New(quizzes service.QuizService, board *leaderboard.Board) *Feature {
	return &Feature{
		quizzes: quizzes,
		board:   board,
	}
}

// HandleCommand routes the quiz slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "play":
		f.handlePlay(s, i, options[0])
	case "stop":
		f.handleStop(s, i)
	case "create":
		f.handleCreate(s, i)
	case "cancel":
		f.handleCancel(s, i)
	case "list":
		f.handleList(s, i)
	case "mine":
		f.handleMine(s, i)
	case "delete":
		f.handleDelete(s, i, options[0])
	case "top":
		f.handleTop(s, i)
	}
}

// HandleInteraction routes answer button presses
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if option, ok := strings.CutPrefix(customID, answerPrefix); ok {
		f.handleAnswer(s, i, option)
	}
}
