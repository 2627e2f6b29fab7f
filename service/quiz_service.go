package service

import (
	"context"
	"fmt"
	"strings"

	"arcade/events"
	"arcade/games"
	"arcade/models"
	"arcade/scope"

	log "github.com/sirupsen/logrus"
)

// QuizLeaderboard refreshes a player's cumulative quiz score after a run
// commits. Failures are the implementation's problem: the engine treats
// the leaderboard as advisory.
type QuizLeaderboard interface {
	Record(ctx context.Context, discordID int64) error
}

// QuizPrompt is the question currently awaiting an answer
type QuizPrompt struct {
	QuizName string
	Index    int
	Total    int
	Question models.QuizQuestion
}

// QuizProgress is the result of one answer event. Result is filled once
// Finished is true.
type QuizProgress struct {
	Correct       bool
	CorrectOption string
	Finished      bool
	Next          *QuizPrompt
	Result        *models.QuizResult
	LevelsGained  int64
	NewBalance    int64
}

// WizardPrompt tells the bot layer what to ask the author next
type WizardPrompt struct {
	State   games.WizardState
	Options []string
	Created *models.Quiz
}

// QuizService defines the interface for quiz play, authoring and browsing
type QuizService interface {
	// StartQuiz opens a player-scoped run of the given quiz
	StartQuiz(ctx context.Context, playerID int64, displayName string, quizID int64) (*QuizPrompt, error)

	// AnswerQuiz applies one answer to the player's active run
	AnswerQuiz(ctx context.Context, playerID int64, option string) (*QuizProgress, error)

	// StopQuiz abandons the player's active run without ledger effects
	StopQuiz(ctx context.Context, playerID int64) error

	// StartWizard opens a player-scoped authoring draft
	StartWizard(ctx context.Context, playerID int64, displayName string) (*WizardPrompt, error)

	// AuthorInput feeds one message of the author's conversation to the wizard
	AuthorInput(ctx context.Context, playerID int64, input string) (*WizardPrompt, error)

	// CancelWizard discards the player's draft
	CancelWizard(ctx context.Context, playerID int64) error

	// ListQuizzes returns public quizzes by popularity
	ListQuizzes(ctx context.Context, limit int) ([]*models.Quiz, error)

	// MyQuizzes returns the caller's authored quizzes
	MyQuizzes(ctx context.Context, playerID int64) ([]*models.Quiz, error)

	// DeleteQuiz removes a quiz; only its creator may do so
	DeleteQuiz(ctx context.Context, playerID int64, quizID int64) error

	// TopPlayers returns the quiz leaderboard
	TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error)
}

// quizService implements the QuizService interface
type quizService struct {
	uowFactory  UnitOfWorkFactory
	locks       *scope.LockRegistry
	sessions    *scope.SessionRegistry
	clock       games.Clock
	leaderboard QuizLeaderboard // optional
}

// NewQuizService creates a new quiz service. The leaderboard may be nil.
func NewQuizService(uowFactory UnitOfWorkFactory, locks *scope.LockRegistry, sessions *scope.SessionRegistry, clock games.Clock, leaderboard QuizLeaderboard) QuizService {
	return &quizService{
		uowFactory:  uowFactory,
		locks:       locks,
		sessions:    sessions,
		clock:       clock,
		leaderboard: leaderboard,
	}
}

// StartQuiz opens a player-scoped run of the given quiz
func (s *quizService) StartQuiz(ctx context.Context, playerID int64, displayName string, quizID int64) (*QuizPrompt, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := ensureAccount(ctx, uow, playerID, displayName); err != nil {
		return nil, err
	}

	quiz, err := uow.QuizRepository().GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	questions, err := uow.QuizRepository().GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizEmpty
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	session, err := s.sessions.TryCreate(guard.Key(), models.GameKindQuizPlay, func() (any, error) {
		return games.NewQuizRun(*quiz, questions, s.clock.Now()), nil
	})
	if err != nil {
		return nil, err
	}

	run := session.(*games.QuizRun)
	return s.prompt(run), nil
}

// AnswerQuiz applies one answer to the player's active run
func (s *quizService) AnswerQuiz(ctx context.Context, playerID int64, option string) (*QuizProgress, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindQuizPlay)
	if err != nil {
		return nil, err
	}
	run := session.(*games.QuizRun)

	// A run stays registered when a previous finish attempt failed;
	// the next answer event retries the finish instead of advancing.
	progress := &QuizProgress{Finished: true}
	if !run.Finished() {
		answer := run.Answer(option)
		progress.Correct = answer.Correct
		progress.CorrectOption = answer.CorrectOption
		progress.Finished = answer.Finished

		if !answer.Finished {
			progress.Next = s.prompt(run)
			return progress, nil
		}
	}

	result, outcome, err := s.finishRun(ctx, playerID, run)
	if err != nil {
		return nil, err
	}
	s.sessions.Remove(guard.Key(), models.GameKindQuizPlay)

	progress.Result = result
	progress.LevelsGained = outcome.LevelsGained
	progress.NewBalance = outcome.NewBalance
	return progress, nil
}

// finishRun persists the completed run: score row, play counter, and the
// reward when the threshold was reached, all in one transaction.
func (s *quizService) finishRun(ctx context.Context, playerID int64, run *games.QuizRun) (*models.QuizResult, *models.GameOutcome, error) {
	result := run.Summary(s.clock.Now())
	quiz := run.Quiz()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, nil, ErrAccountNotFound
	}

	if err := uow.QuizScoreRepository().Create(ctx, &models.QuizScore{
		QuizID:         quiz.ID,
		DiscordID:      playerID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      result.TimeTaken,
	}); err != nil {
		return nil, nil, err
	}

	if err := uow.QuizRepository().IncrementTimesPlayed(ctx, quiz.ID); err != nil {
		return nil, nil, err
	}

	var gained int64
	if result.Rewarded {
		if err := creditBalance(ctx, uow, account, result.Reward, "quiz reward"); err != nil {
			return nil, nil, err
		}
		gained, err = grantXP(ctx, uow, account, result.XPReward)
		if err != nil {
			return nil, nil, err
		}
	}

	uow.EventBus().Publish(events.QuizCompletedEvent{
		DiscordID: playerID,
		QuizID:    quiz.ID,
		Score:     result.Score,
		Rewarded:  result.Rewarded,
	})

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	// The leaderboard is advisory: failures are logged, never surfaced
	if s.leaderboard != nil {
		if err := s.leaderboard.Record(ctx, playerID); err != nil {
			log.WithError(err).WithField("discordID", playerID).Warn("Failed to update quiz leaderboard")
		}
	}

	return &result, &models.GameOutcome{
		Kind:         models.GameKindQuizPlay,
		Won:          result.Rewarded,
		Payout:       result.Reward,
		XP:           result.XPReward,
		LevelsGained: gained,
		NewBalance:   account.Balance,
	}, nil
}

// StopQuiz abandons the player's active run without ledger effects
func (s *quizService) StopQuiz(ctx context.Context, playerID int64) error {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	if _, err := s.sessions.Get(guard.Key(), models.GameKindQuizPlay); err != nil {
		return err
	}
	s.sessions.Remove(guard.Key(), models.GameKindQuizPlay)
	return nil
}

// StartWizard opens a player-scoped authoring draft
func (s *quizService) StartWizard(ctx context.Context, playerID int64, displayName string) (*WizardPrompt, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := ensureAccount(ctx, uow, playerID, displayName); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	session, err := s.sessions.TryCreate(guard.Key(), models.GameKindQuizAuthor, func() (any, error) {
		return games.NewQuizWizard(playerID), nil
	})
	if err != nil {
		return nil, err
	}

	wizard := session.(*games.QuizWizard)
	return &WizardPrompt{State: wizard.State()}, nil
}

// AuthorInput feeds one message of the author's conversation to the wizard.
// Answer sets arrive as one message split on newlines or semicolons.
func (s *quizService) AuthorInput(ctx context.Context, playerID int64, input string) (*WizardPrompt, error) {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindQuizAuthor)
	if err != nil {
		return nil, err
	}
	wizard := session.(*games.QuizWizard)

	switch wizard.State() {
	case games.WizardAwaitingName:
		err = wizard.SetName(input)
	case games.WizardAwaitingQuestion:
		err = wizard.SetQuestionText(input)
	case games.WizardAwaitingAnswers:
		err = wizard.SetAnswers(splitAnswers(input))
	case games.WizardAwaitingCorrectOption:
		err = wizard.SetCorrectOption(input)
	case games.WizardAwaitingMore:
		return s.wizardMore(ctx, guard, wizard, playerID, input)
	default:
		err = games.ErrWizardState
	}
	if err != nil {
		return nil, err
	}

	return &WizardPrompt{State: wizard.State(), Options: wizard.Options()}, nil
}

// wizardMore handles the add-another/finish branch of the conversation
func (s *quizService) wizardMore(ctx context.Context, guard *scope.Guard, wizard *games.QuizWizard, playerID int64, input string) (*WizardPrompt, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "add", "more", "yes":
		if err := wizard.AddAnother(); err != nil {
			return nil, err
		}
		return &WizardPrompt{State: wizard.State()}, nil

	case "done", "finish", "no":
		name, questions, err := wizard.Finish()
		if err != nil {
			return nil, err
		}

		quiz, err := s.persistDraft(ctx, playerID, name, questions)
		if err != nil {
			return nil, err
		}

		s.sessions.Remove(guard.Key(), models.GameKindQuizAuthor)
		return &WizardPrompt{State: wizard.State(), Created: quiz}, nil

	default:
		return nil, games.ErrWizardState
	}
}

// persistDraft writes the quiz row and all question rows as one unit
func (s *quizService) persistDraft(ctx context.Context, playerID int64, name string, questions []models.QuizQuestion) (*models.Quiz, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	quiz := &models.Quiz{
		Name:       name,
		CreatorID:  playerID,
		Category:   "general",
		Difficulty: "medium",
		Reward:     50,
		XPReward:   20,
		IsPublic:   true,
	}

	rows := make([]*models.QuizQuestion, len(questions))
	for i := range questions {
		rows[i] = &questions[i]
	}

	if err := uow.QuizRepository().CreateWithQuestions(ctx, quiz, rows); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// CancelWizard discards the player's draft
func (s *quizService) CancelWizard(ctx context.Context, playerID int64) error {
	guard := s.locks.Acquire(scope.Player(playerID))
	defer guard.Release()

	session, err := s.sessions.Get(guard.Key(), models.GameKindQuizAuthor)
	if err != nil {
		return err
	}

	if err := session.(*games.QuizWizard).Cancel(); err != nil {
		return err
	}
	s.sessions.Remove(guard.Key(), models.GameKindQuizAuthor)
	return nil
}

// ListQuizzes returns public quizzes by popularity
func (s *quizService) ListQuizzes(ctx context.Context, limit int) ([]*models.Quiz, error) {
	return s.readQuizzes(ctx, func(ctx context.Context, uow UnitOfWork) ([]*models.Quiz, error) {
		return uow.QuizRepository().ListPublic(ctx, limit)
	})
}

// MyQuizzes returns the caller's authored quizzes
func (s *quizService) MyQuizzes(ctx context.Context, playerID int64) ([]*models.Quiz, error) {
	return s.readQuizzes(ctx, func(ctx context.Context, uow UnitOfWork) ([]*models.Quiz, error) {
		return uow.QuizRepository().ListByCreator(ctx, playerID)
	})
}

func (s *quizService) readQuizzes(ctx context.Context, read func(context.Context, UnitOfWork) ([]*models.Quiz, error)) ([]*models.Quiz, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	quizzes, err := read(ctx, uow)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// DeleteQuiz removes a quiz; only its creator may do so
func (s *quizService) DeleteQuiz(ctx context.Context, playerID int64, quizID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	quiz, err := uow.QuizRepository().GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return ErrQuizNotFound
	}
	if quiz.CreatorID != playerID {
		return ErrQuizForbidden
	}

	if err := uow.QuizRepository().Delete(ctx, quizID); err != nil {
		return err
	}

	return uow.Commit()
}

// TopPlayers returns the quiz leaderboard
func (s *quizService) TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.QuizScoreRepository().TopPlayers(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *quizService) prompt(run *games.QuizRun) *QuizPrompt {
	question := run.Current()
	if question == nil {
		return nil
	}
	return &QuizPrompt{
		QuizName: run.Quiz().Name,
		Index:    run.Index(),
		Total:    run.Total(),
		Question: *question,
	}
}

func splitAnswers(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ';'
	})
}
