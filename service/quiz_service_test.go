package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcade/games"
	"arcade/models"
	"arcade/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quizFixture(n int) (*models.Quiz, []models.QuizQuestion) {
	quiz := &models.Quiz{
		ID: 5, Name: "capitals", CreatorID: 9,
		Reward: 50, XPReward: 20, IsPublic: true,
	}
	questions := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.QuizQuestion{
			ID: int64(i + 1), QuizID: 5,
			Text:          "q",
			Options:       []string{"right", "wrong"},
			CorrectOption: "A",
			Points:        10,
		})
	}
	return quiz, questions
}

func TestQuizService_Play(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("unknown quiz", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		d.accounts.On("GetByDiscordID", ctx, int64(1)).Return(&models.Account{
			DiscordID: 1, DisplayName: "alice", Balance: 100, Level: 1,
		}, nil)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(nil, nil)

		_, err := svc.StartQuiz(ctx, 1, "alice", 5)
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})

	t.Run("empty quiz", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, _ := quizFixture(0)
		d.accounts.On("GetByDiscordID", ctx, int64(1)).Return(&models.Account{
			DiscordID: 1, DisplayName: "alice", Balance: 100, Level: 1,
		}, nil)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)
		d.quizzes.On("GetQuestions", ctx, int64(5)).Return([]models.QuizQuestion{}, nil)

		_, err := svc.StartQuiz(ctx, 1, "alice", 5)
		assert.ErrorIs(t, err, ErrQuizEmpty)
	})

	t.Run("passing run is rewarded once", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, questions := quizFixture(5)
		account := &models.Account{DiscordID: 1, DisplayName: "alice", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(1)).Return(account, nil)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)
		d.quizzes.On("GetQuestions", ctx, int64(5)).Return(questions, nil)
		d.quizScores.On("Create", ctx, mock.MatchedBy(func(s *models.QuizScore) bool {
			return s.QuizID == 5 && s.DiscordID == 1 &&
				s.Score == 40 && s.CorrectAnswers == 4 && s.TotalQuestions == 5
		})).Return(nil)
		d.quizzes.On("IncrementTimesPlayed", ctx, int64(5)).Return(nil)
		d.accounts.On("AddBalance", ctx, int64(1), int64(50)).Return(nil)
		d.accounts.On("UpdateProgress", ctx, int64(1), int64(20), int64(1)).Return(nil)

		prompt, err := svc.StartQuiz(ctx, 1, "alice", 5)
		require.NoError(t, err)
		assert.Equal(t, 0, prompt.Index)
		assert.Equal(t, 5, prompt.Total)

		// 4 of 5 correct: 80% clears the threshold
		var progress *QuizProgress
		for i, option := range []string{"A", "A", "B", "A", "A"} {
			progress, err = svc.AnswerQuiz(ctx, 1, option)
			require.NoError(t, err)
			assert.Equal(t, i == 4, progress.Finished)
		}

		require.NotNil(t, progress.Result)
		assert.True(t, progress.Result.Rewarded)
		assert.InDelta(t, 80.0, progress.Result.Percentage, 0.001)
		assert.Equal(t, int64(150), progress.NewBalance)

		// Session is gone
		_, err = svc.AnswerQuiz(ctx, 1, "A")
		assert.ErrorIs(t, err, scope.ErrSessionNotFound)
		d.assertExpectations(t)
	})

	t.Run("failing run still counts a play but pays nothing", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, questions := quizFixture(5)
		account := &models.Account{DiscordID: 1, DisplayName: "alice", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(1)).Return(account, nil)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)
		d.quizzes.On("GetQuestions", ctx, int64(5)).Return(questions, nil)
		d.quizScores.On("Create", ctx, mock.MatchedBy(func(s *models.QuizScore) bool {
			return s.CorrectAnswers == 3
		})).Return(nil)
		d.quizzes.On("IncrementTimesPlayed", ctx, int64(5)).Return(nil)

		_, err := svc.StartQuiz(ctx, 1, "alice", 5)
		require.NoError(t, err)

		var progress *QuizProgress
		for _, option := range []string{"A", "A", "A", "B", "B"} {
			progress, err = svc.AnswerQuiz(ctx, 1, option)
			require.NoError(t, err)
		}

		require.NotNil(t, progress.Result)
		assert.False(t, progress.Result.Rewarded)
		assert.Equal(t, int64(100), progress.NewBalance)
		d.accounts.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
		d.assertExpectations(t)
	})

	t.Run("failed finish is retried by the next answer", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, questions := quizFixture(1)
		account := &models.Account{DiscordID: 1, DisplayName: "alice", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(1)).Return(account, nil)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)
		d.quizzes.On("GetQuestions", ctx, int64(5)).Return(questions, nil)
		d.quizScores.On("Create", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
		d.quizScores.On("Create", ctx, mock.Anything).Return(nil).Once()
		d.quizzes.On("IncrementTimesPlayed", ctx, int64(5)).Return(nil).Once()
		d.accounts.On("AddBalance", ctx, int64(1), int64(50)).Return(nil).Once()
		d.accounts.On("UpdateProgress", ctx, int64(1), int64(20), int64(1)).Return(nil).Once()

		_, err := svc.StartQuiz(ctx, 1, "alice", 5)
		require.NoError(t, err)

		// The last answer finishes the run, but persisting it fails
		_, err = svc.AnswerQuiz(ctx, 1, "A")
		require.Error(t, err)

		// The run stays registered; the next answer event completes the
		// finish without re-scoring the already answered question
		progress, err := svc.AnswerQuiz(ctx, 1, "A")
		require.NoError(t, err)
		require.NotNil(t, progress.Result)
		assert.True(t, progress.Result.Rewarded)
		assert.Equal(t, int64(1), progress.Result.CorrectAnswers)
		assert.Equal(t, int64(150), progress.NewBalance)

		_, err = svc.AnswerQuiz(ctx, 1, "A")
		assert.ErrorIs(t, err, scope.ErrSessionNotFound)
		d.assertExpectations(t)
	})
}

func TestQuizService_Wizard(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("full conversation persists the quiz", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		account := &models.Account{DiscordID: 9, DisplayName: "carol", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(9)).Return(account, nil)
		d.quizzes.On("CreateWithQuestions", ctx, mock.MatchedBy(func(q *models.Quiz) bool {
			return q.Name == "capitals" && q.CreatorID == 9
		}), mock.MatchedBy(func(qs []*models.QuizQuestion) bool {
			return len(qs) == 1 && qs[0].CorrectOption == "B" && len(qs[0].Options) == 3
		})).Return(nil)

		prompt, err := svc.StartWizard(ctx, 9, "carol")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingName, prompt.State)

		prompt, err = svc.AuthorInput(ctx, 9, "capitals")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingQuestion, prompt.State)

		prompt, err = svc.AuthorInput(ctx, 9, "Capital of Japan?")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingAnswers, prompt.State)

		prompt, err = svc.AuthorInput(ctx, 9, "Osaka; Tokyo; Kyoto")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingCorrectOption, prompt.State)

		prompt, err = svc.AuthorInput(ctx, 9, "b")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingMore, prompt.State)

		prompt, err = svc.AuthorInput(ctx, 9, "done")
		require.NoError(t, err)
		assert.Equal(t, games.WizardFinished, prompt.State)
		require.NotNil(t, prompt.Created)

		// Draft session is gone
		_, err = svc.AuthorInput(ctx, 9, "anything")
		assert.ErrorIs(t, err, scope.ErrSessionNotFound)
		d.assertExpectations(t)
	})

	t.Run("invalid input keeps the state", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		account := &models.Account{DiscordID: 9, DisplayName: "carol", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(9)).Return(account, nil)

		_, err := svc.StartWizard(ctx, 9, "carol")
		require.NoError(t, err)
		_, err = svc.AuthorInput(ctx, 9, "quiz")
		require.NoError(t, err)
		_, err = svc.AuthorInput(ctx, 9, "question?")
		require.NoError(t, err)

		_, err = svc.AuthorInput(ctx, 9, "only-one-answer")
		assert.ErrorIs(t, err, games.ErrTooFewOptions)

		// Still awaiting answers
		prompt, err := svc.AuthorInput(ctx, 9, "yes; no")
		require.NoError(t, err)
		assert.Equal(t, games.WizardAwaitingCorrectOption, prompt.State)

		_, err = svc.AuthorInput(ctx, 9, "Z")
		assert.ErrorIs(t, err, games.ErrInvalidOption)
	})

	t.Run("cancel discards the draft", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		account := &models.Account{DiscordID: 9, DisplayName: "carol", Balance: 100, Level: 1}
		d.accounts.On("GetByDiscordID", ctx, int64(9)).Return(account, nil)

		_, err := svc.StartWizard(ctx, 9, "carol")
		require.NoError(t, err)
		require.NoError(t, svc.CancelWizard(ctx, 9))

		// A fresh wizard can start right away
		_, err = svc.StartWizard(ctx, 9, "carol")
		require.NoError(t, err)
	})
}

func TestQuizService_Management(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("delete is creator-only", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, _ := quizFixture(1)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)

		err := svc.DeleteQuiz(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrQuizForbidden)
		d.quizzes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("creator deletes", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, _ := quizFixture(1)
		d.quizzes.On("GetByID", ctx, int64(5)).Return(quiz, nil)
		d.quizzes.On("Delete", ctx, int64(5)).Return(nil)

		require.NoError(t, svc.DeleteQuiz(ctx, 9, 5))
		d.assertExpectations(t)
	})

	t.Run("lists pass through", func(t *testing.T) {
		d := newMockDeps()
		svc := NewQuizService(d.factory, d.locks, d.sessions, clock, nil)

		quiz, _ := quizFixture(1)
		d.quizzes.On("ListPublic", ctx, 10).Return([]*models.Quiz{quiz}, nil)
		d.quizScores.On("TopPlayers", ctx, 5).Return([]*models.QuizTopEntry{
			{DiscordID: 1, TotalScore: 90},
		}, nil)

		quizzes, err := svc.ListQuizzes(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, quizzes, 1)

		top, err := svc.TopPlayers(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, top, 1)
	})
}
