package service

import (
	"context"
	"time"

	"arcade/events"
	"arcade/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByDiscordID retrieves an account by its Discord ID, nil when absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error)

	// Create creates a new account with the starting balance
	Create(ctx context.Context, discordID int64, displayName string, startingBalance int64) (*models.Account, error)

	// UpdateDisplayName refreshes the stored display name
	UpdateDisplayName(ctx context.Context, discordID int64, displayName string) error

	// AddBalance adds to an account's balance atomically
	AddBalance(ctx context.Context, discordID int64, amount int64) error

	// DeductBalance deducts from an account's balance atomically, failing if insufficient funds
	DeductBalance(ctx context.Context, discordID int64, amount int64) error

	// UpdateProgress writes a normalized xp/level pair
	UpdateProgress(ctx context.Context, discordID int64, xp, level int64) error

	// RecordOutcome increments wins or losses together with games_played
	RecordOutcome(ctx context.Context, discordID int64, won bool) error

	// SetLastDaily records the time of a daily bonus claim
	SetLastDaily(ctx context.Context, discordID int64, claimedAt time.Time) error

	// GetTop returns the highest-level accounts for the leaderboard
	GetTop(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	// Create inserts a new loan and fills in its ID and creation time
	Create(ctx context.Context, loan *models.Loan) error

	// GetByOwner returns all outstanding loans of an account, oldest first
	GetByOwner(ctx context.Context, discordID int64) ([]*models.Loan, error)

	// GetForOwner retrieves one loan if it belongs to the account, nil when absent
	GetForOwner(ctx context.Context, loanID, discordID int64) (*models.Loan, error)

	// Delete removes a fully repaid loan
	Delete(ctx context.Context, loanID int64) error
}

// WordRepository defines the interface for the word list backing word games
type WordRepository interface {
	// Random returns a uniformly random word for the given language
	Random(ctx context.Context, language string) (string, error)
}

// QuizRepository defines the interface for quiz definition data access
type QuizRepository interface {
	// CreateWithQuestions inserts a quiz and its questions in one shot
	CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.QuizQuestion) error

	// GetByID retrieves a quiz by its ID, nil when absent
	GetByID(ctx context.Context, quizID int64) (*models.Quiz, error)

	// GetQuestions returns the questions of a quiz in stored order
	GetQuestions(ctx context.Context, quizID int64) ([]models.QuizQuestion, error)

	// ListPublic returns public quizzes with their question counts
	ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error)

	// ListByCreator returns all quizzes authored by an account
	ListByCreator(ctx context.Context, creatorID int64) ([]*models.Quiz, error)

	// Delete removes a quiz and, via cascade, its questions and scores
	Delete(ctx context.Context, quizID int64) error

	// IncrementTimesPlayed bumps the play counter once per completed run
	IncrementTimesPlayed(ctx context.Context, quizID int64) error
}

// QuizScoreRepository defines the interface for the append-only quiz score log
type QuizScoreRepository interface {
	// Create appends a completed-run record
	Create(ctx context.Context, score *models.QuizScore) error

	// TopPlayers aggregates total scores across all runs
	TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error)

	// TotalScoreByPlayer returns one player's aggregate score
	TotalScoreByPlayer(ctx context.Context, discordID int64) (int64, error)
}

// LedgerService defines the interface for account balance and progression operations.
// Callers are expected to hold the player scope lock across read-decide-write spans.
type LedgerService interface {
	// GetOrCreateAccount retrieves an existing account or creates one with the starting balance
	GetOrCreateAccount(ctx context.Context, discordID int64, displayName string) (*models.Account, error)

	// AddXP awards experience and normalizes it into levels, returning levels gained
	AddXP(ctx context.Context, discordID int64, amount int64) (*models.Account, int64, error)

	// RemoveXP deducts experience, borrowing levels down to the floor of level 1
	RemoveXP(ctx context.Context, discordID int64, amount int64) (*models.Account, error)

	// RecordOutcome updates win/loss counters after a game resolves
	RecordOutcome(ctx context.Context, discordID int64, won bool) error
}

// LoanService defines the interface for loan operations
type LoanService interface {
	// TakeLoan issues a new loan if the outstanding principal stays under the cap
	TakeLoan(ctx context.Context, discordID int64, displayName string, amount int64) (*models.Loan, int64, error)

	// ListLoans returns the caller's loans with debts computed at the current instant
	ListLoans(ctx context.Context, discordID int64) ([]models.LoanStatement, error)

	// Repay pays a loan in full at the debt computed at the repayment instant
	Repay(ctx context.Context, discordID int64, loanID int64) (*models.RepayResult, error)
}

// EconomyService defines the interface for daily bonuses and transfers
type EconomyService interface {
	// ClaimDaily grants the level-scaled daily bonus once per cooldown window
	ClaimDaily(ctx context.Context, discordID int64, displayName string) (*models.DailyClaimResult, error)

	// Transfer moves coins between two accounts
	Transfer(ctx context.Context, fromID, toID int64, fromName, toName string, amount int64) (*models.TransferResult, error)
}

// StatsService defines the interface for profile and leaderboard reads
type StatsService interface {
	// GetProfile returns an account with its loans' current debts
	GetProfile(ctx context.Context, discordID int64, displayName string) (*models.Account, []models.LoanStatement, error)

	// GetLeaderboard returns the top accounts by level and experience
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	LoanRepository() LoanRepository
	WordRepository() WordRepository
	QuizRepository() QuizRepository
	QuizScoreRepository() QuizScoreRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
