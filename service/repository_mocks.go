package service

import (
	"context"
	"time"

	"arcade/events"
	"arcade/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID int64, displayName string, startingBalance int64) (*models.Account, error) {
	args := m.Called(ctx, discordID, displayName, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateDisplayName(ctx context.Context, discordID int64, displayName string) error {
	args := m.Called(ctx, discordID, displayName)
	return args.Error(0)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateProgress(ctx context.Context, discordID int64, xp, level int64) error {
	args := m.Called(ctx, discordID, xp, level)
	return args.Error(0)
}

func (m *MockAccountRepository) RecordOutcome(ctx context.Context, discordID int64, won bool) error {
	args := m.Called(ctx, discordID, won)
	return args.Error(0)
}

func (m *MockAccountRepository) SetLastDaily(ctx context.Context, discordID int64, claimedAt time.Time) error {
	args := m.Called(ctx, discordID, claimedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) GetTop(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockLoanRepository is a mock implementation of LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByOwner(ctx context.Context, discordID int64) ([]*models.Loan, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetForOwner(ctx context.Context, loanID, discordID int64) (*models.Loan, error) {
	args := m.Called(ctx, loanID, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) Delete(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

// MockWordRepository is a mock implementation of WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Random(ctx context.Context, language string) (string, error) {
	args := m.Called(ctx, language)
	return args.String(0), args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.QuizQuestion) error {
	args := m.Called(ctx, quiz, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, quizID int64) (*models.Quiz, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuestions(ctx context.Context, quizID int64) ([]models.QuizQuestion, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*models.Quiz, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Delete(ctx context.Context, quizID int64) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

func (m *MockQuizRepository) IncrementTimesPlayed(ctx context.Context, quizID int64) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

// MockQuizScoreRepository is a mock implementation of QuizScoreRepository
type MockQuizScoreRepository struct {
	mock.Mock
}

func (m *MockQuizScoreRepository) Create(ctx context.Context, score *models.QuizScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockQuizScoreRepository) TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizTopEntry), args.Error(1)
}

func (m *MockQuizScoreRepository) TotalScoreByPlayer(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	accountRepo   AccountRepository
	loanRepo      LoanRepository
	wordRepo      WordRepository
	quizRepo      QuizRepository
	quizScoreRepo QuizScoreRepository
	eventBus      EventPublisher
}

// SetRepositories wires the mocked repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(accounts AccountRepository, loans LoanRepository, words WordRepository, quizzes QuizRepository, quizScores QuizScoreRepository, bus EventPublisher) {
	m.accountRepo = accounts
	m.loanRepo = loans
	m.wordRepo = words
	m.quizRepo = quizzes
	m.quizScoreRepo = quizScores
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository     { return m.accountRepo }
func (m *MockUnitOfWork) LoanRepository() LoanRepository           { return m.loanRepo }
func (m *MockUnitOfWork) WordRepository() WordRepository           { return m.wordRepo }
func (m *MockUnitOfWork) QuizRepository() QuizRepository           { return m.quizRepo }
func (m *MockUnitOfWork) QuizScoreRepository() QuizScoreRepository { return m.quizScoreRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                 { return m.eventBus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
