package quiz

import (
	"context"
	"fmt"
	"strings"

	"arcade/bot/common"
	"arcade/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	playerID := common.InteractionUserID(i)

	var quizID int64
	for _, opt := range sub.Options {
		if opt.Name == "id" {
			quizID = opt.IntValue()
		}
	}

	prompt, err := f.quizzes.StartQuiz(ctx, playerID, user.Username, quizID)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: promptResponseData(prompt),
	})
	if err != nil {
		log.Errorf("Error responding to quiz play: %v", err)
	}
}

func (f *Feature) handleAnswer(s *discordgo.Session, i *discordgo.InteractionCreate, option string) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	progress, err := f.quizzes.AnswerQuiz(ctx, playerID, option)
	if err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}

	var data *discordgo.InteractionResponseData
	if progress.Finished {
		data = resultResponseData(progress)
	} else {
		data = promptResponseData(progress.Next)
		data.Content = answerFeedback(progress)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error updating quiz message: %v", err)
	}
}

func (f *Feature) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	playerID := common.InteractionUserID(i)

	if err := f.quizzes.StopQuiz(ctx, playerID); err != nil {
		common.RespondWithServiceError(s, i, err)
		return
	}
	respond(s, i, "🧠 Quiz abandoned.")
}

func promptResponseData(prompt *service.QuizPrompt) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧠 %s · question %d/%d", prompt.QuizName, prompt.Index+1, prompt.Total),
		Description: prompt.Question.Text,
		Color:       common.ColorPrimary,
	}

	letters := []string{"A", "B", "C", "D"}
	buttons := make([]discordgo.MessageComponent, 0, len(prompt.Question.Options))
	var lines []string
	for idx, option := range prompt.Question.Options {
		if idx >= len(letters) {
			break
		}
		lines = append(lines, fmt.Sprintf("**%s.** %s", letters[idx], option))
		buttons = append(buttons, discordgo.Button{
			Label:    letters[idx],
			Style:    discordgo.SecondaryButton,
			CustomID: answerPrefix + letters[idx],
		})
	}
	embed.Description += "\n\n" + strings.Join(lines, "\n")

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
		},
	}
}

func answerFeedback(progress *service.QuizProgress) string {
	if progress.Correct {
		return "✅ Correct!"
	}
	return fmt.Sprintf("❌ Wrong! It was **%s**.", progress.CorrectOption)
}

func resultResponseData(progress *service.QuizProgress) *discordgo.InteractionResponseData {
	result := progress.Result

	var b strings.Builder
	fmt.Fprintf(&b, "**%d/%d correct** (%.0f%%), **%d points** in %ds\n",
		result.CorrectAnswers, result.TotalQuestions, result.Percentage,
		result.Score, result.TimeTaken)
	if result.Rewarded {
		fmt.Fprintf(&b, "🏆 Reward: **%s coins** + %d XP. Balance: **%s**",
			common.FormatCoins(result.Reward), result.XPReward, common.FormatCoins(progress.NewBalance))
		if progress.LevelsGained > 0 {
			fmt.Fprintf(&b, "\n🆙 Level up ×%d!", progress.LevelsGained)
		}
	} else {
		b.WriteString("Below the 70% bar, no reward this time.")
	}

	color := common.ColorError
	if result.Rewarded {
		color = common.ColorSuccess
	}
	return &discordgo.InteractionResponseData{
		Content: answerFeedback(progress),
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("🧠 %s · finished", result.QuizName),
			Description: b.String(),
			Color:       color,
		}},
		Components: []discordgo.MessageComponent{},
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Error responding to quiz command: %v", err)
	}
}
