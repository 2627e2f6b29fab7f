package quiz

import (
	"context"
	"fmt"
	"strings"

	"arcade/bot/common"
	"arcade/leaderboard"
	"arcade/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const listLimit = 15

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	quizzes, err := f.quizzes.ListQuizzes(ctx, listLimit)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	if len(quizzes) == 0 {
		respond(s, i, "🧠 No public quizzes yet. `/quiz create` makes the first one!")
		return
	}
	respond(s, i, formatQuizList("🧠 **Public quizzes**", quizzes))
}

func (f *Feature) handleMine(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	quizzes, err := f.quizzes.MyQuizzes(ctx, playerID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	if len(quizzes) == 0 {
		respond(s, i, "🧠 You haven't created any quizzes yet.")
		return
	}
	respond(s, i, formatQuizList("🧠 **Your quizzes**", quizzes))
}

func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	var quizID int64
	for _, opt := range sub.Options {
		if opt.Name == "id" {
			quizID = opt.IntValue()
		}
	}

	if err := f.quizzes.DeleteQuiz(ctx, playerID, quizID); err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, fmt.Sprintf("🗑️ Quiz **#%d** deleted.", quizID))
}

// handleTop prefers the Redis board and falls back to SQL when the cache
// is unavailable.
func (f *Feature) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if f.board != nil {
		entries, err := f.board.Top(ctx, 10)
		if err == nil {
			respond(s, i, formatBoardTop(entries))
			return
		}
		log.WithError(err).Warn("Quiz leaderboard cache unavailable, falling back to SQL")
	}

	entries, err := f.quizzes.TopPlayers(ctx, 10)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, formatSQLTop(entries))
}

func formatQuizList(header string, quizzes []*models.Quiz) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, quiz := range quizzes {
		fmt.Fprintf(&b, "`#%d` **%s** (%d questions, played %d times)\n",
			quiz.ID, quiz.Name, quiz.QuestionCount, quiz.TimesPlayed)
	}
	b.WriteString("Play one with `/quiz play id:<id>`")
	return b.String()
}

func formatBoardTop(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return "🏆 Nobody on the quiz leaderboard yet."
	}
	var b strings.Builder
	b.WriteString("🏆 **Quiz leaderboard**\n")
	for idx, entry := range entries {
		fmt.Fprintf(&b, "%s <@%d> · **%s points**\n",
			common.MedalForRank(idx+1), entry.DiscordID, common.FormatCoins(entry.Score))
	}
	return b.String()
}

func formatSQLTop(entries []*models.QuizTopEntry) string {
	if len(entries) == 0 {
		return "🏆 Nobody on the quiz leaderboard yet."
	}
	var b strings.Builder
	b.WriteString("🏆 **Quiz leaderboard**\n")
	for idx, entry := range entries {
		fmt.Fprintf(&b, "%s **%s** · **%s points** over %d runs\n",
			common.MedalForRank(idx+1), entry.DisplayName, common.FormatCoins(entry.TotalScore), entry.Games)
	}
	return b.String()
}
