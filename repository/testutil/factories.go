package testutil

import (
	"arcade/models"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(discordID int64, displayName string) *models.Account {
	return &models.Account{
		DiscordID:   discordID,
		DisplayName: displayName,
		Balance:     500,
		Level:       1,
	}
}

// CreateTestQuiz creates a test quiz owned by the given creator
func CreateTestQuiz(name string, creatorID int64) *models.Quiz {
	return &models.Quiz{
		Name:       name,
		CreatorID:  creatorID,
		Category:   "general",
		Difficulty: "medium",
		Reward:     50,
		XPReward:   20,
		IsPublic:   true,
	}
}

// CreateTestQuestions builds n four-option questions with the first option correct
func CreateTestQuestions(n int) []*models.QuizQuestion {
	questions := make([]*models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, &models.QuizQuestion{
			Text:          "question " + models.OptionLetter(i),
			Options:       []string{"right", "wrong", "also wrong", "still wrong"},
			CorrectOption: "A",
			Points:        10,
			TimeLimit:     30,
		})
	}
	return questions
}
