package repository

import (
	"context"
	"testing"

	"arcade/models"
	"arcade/repository/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewQuizRepository(testDB.DB)
	ctx := context.Background()

	_, err := accounts.Create(ctx, 100, "alice", 500)
	require.NoError(t, err)
	_, err = accounts.Create(ctx, 200, "bob", 500)
	require.NoError(t, err)

	t.Run("create with questions", func(t *testing.T) {
		quiz := testutil.CreateTestQuiz("capitals", 100)
		questions := []*models.QuizQuestion{
			{
				Text:          "Capital of France?",
				Options:       []string{"Paris", "Lyon"},
				CorrectOption: "A",
			},
			{
				Text:          "Capital of Japan?",
				Options:       []string{"Osaka", "Tokyo", "Kyoto", "Nagoya"},
				CorrectOption: "B",
				Points:        25,
			},
		}

		require.NoError(t, repo.CreateWithQuestions(ctx, quiz, questions))
		assert.NotZero(t, quiz.ID)
		assert.Equal(t, int64(2), quiz.QuestionCount)

		stored, err := repo.GetQuestions(ctx, quiz.ID)
		require.NoError(t, err)
		require.Len(t, stored, 2)

		// Two-option question comes back with exactly two options
		assert.Equal(t, []string{"Paris", "Lyon"}, stored[0].Options)
		assert.Equal(t, int64(10), stored[0].Points)

		assert.Equal(t, []string{"Osaka", "Tokyo", "Kyoto", "Nagoya"}, stored[1].Options)
		assert.Equal(t, "B", stored[1].CorrectOption)
		assert.Equal(t, int64(25), stored[1].Points)
	})

	t.Run("get by id", func(t *testing.T) {
		quizzes, err := repo.ListByCreator(ctx, 100)
		require.NoError(t, err)
		require.Len(t, quizzes, 1)

		quiz, err := repo.GetByID(ctx, quizzes[0].ID)
		require.NoError(t, err)
		require.NotNil(t, quiz)
		assert.Equal(t, "capitals", quiz.Name)
		assert.Equal(t, int64(2), quiz.QuestionCount)

		missing, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list public hides private quizzes", func(t *testing.T) {
		private := testutil.CreateTestQuiz("secret", 200)
		private.IsPublic = false
		require.NoError(t, repo.CreateWithQuestions(ctx, private, testutil.CreateTestQuestions(1)))

		quizzes, err := repo.ListPublic(ctx, 10)
		require.NoError(t, err)
		require.Len(t, quizzes, 1)
		assert.Equal(t, "capitals", quizzes[0].Name)
	})

	t.Run("increment times played", func(t *testing.T) {
		quizzes, err := repo.ListByCreator(ctx, 100)
		require.NoError(t, err)
		quizID := quizzes[0].ID

		require.NoError(t, repo.IncrementTimesPlayed(ctx, quizID))

		quiz, err := repo.GetByID(ctx, quizID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), quiz.TimesPlayed)
	})

	t.Run("delete cascades to questions and scores", func(t *testing.T) {
		quizzes, err := repo.ListByCreator(ctx, 100)
		require.NoError(t, err)
		quizID := quizzes[0].ID

		scores := NewQuizScoreRepository(testDB.DB)
		require.NoError(t, scores.Create(ctx, &models.QuizScore{
			QuizID:         quizID,
			DiscordID:      200,
			Score:          10,
			CorrectAnswers: 1,
			TotalQuestions: 2,
		}))

		require.NoError(t, repo.Delete(ctx, quizID))

		questions, err := repo.GetQuestions(ctx, quizID)
		require.NoError(t, err)
		assert.Empty(t, questions)

		total, err := scores.TotalScoreByPlayer(ctx, 200)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestQuizScoreRepository_TopPlayers(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	quizzes := NewQuizRepository(testDB.DB)
	repo := NewQuizScoreRepository(testDB.DB)
	ctx := context.Background()

	_, err := accounts.Create(ctx, 1, "alice", 500)
	require.NoError(t, err)
	_, err = accounts.Create(ctx, 2, "bob", 500)
	require.NoError(t, err)

	quiz := testutil.CreateTestQuiz("general", 1)
	require.NoError(t, quizzes.CreateWithQuestions(ctx, quiz, testutil.CreateTestQuestions(2)))

	addScore := func(discordID, score, correct int64) {
		require.NoError(t, repo.Create(ctx, &models.QuizScore{
			QuizID:         quiz.ID,
			DiscordID:      discordID,
			Score:          score,
			CorrectAnswers: correct,
			TotalQuestions: 2,
		}))
	}

	addScore(1, 20, 2)
	addScore(1, 10, 1)
	addScore(2, 20, 2)

	entries, err := repo.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(1), entries[0].DiscordID)
	assert.Equal(t, "alice", entries[0].DisplayName)
	assert.Equal(t, int64(30), entries[0].TotalScore)
	assert.Equal(t, int64(2), entries[0].Games)
	assert.Equal(t, int64(3), entries[0].Correct)
	assert.Equal(t, int64(4), entries[0].Total)

	assert.Equal(t, int64(2), entries[1].DiscordID)
	assert.Equal(t, int64(20), entries[1].TotalScore)

	total, err := repo.TotalScoreByPlayer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
}
