package repository

import (
	"context"
	"fmt"
	"time"

	"arcade/database"
	"arcade/models"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `discord_id, display_name, balance, xp, level, wins, losses, games_played, last_daily, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.DiscordID,
		&a.DisplayName,
		&a.Balance,
		&a.XP,
		&a.Level,
		&a.Wins,
		&a.Losses,
		&a.GamesPlayed,
		&a.LastDaily,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByDiscordID retrieves an account by its Discord ID
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = $1
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by discord ID %d: %w", discordID, err)
	}

	return account, nil
}

// Create creates a new account with the starting balance
func (r *AccountRepository) Create(ctx context.Context, discordID int64, displayName string, startingBalance int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (discord_id, display_name, balance)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns + `
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, displayName, startingBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create account with discord ID %d: %w", discordID, err)
	}

	return account, nil
}

// UpdateDisplayName refreshes the stored display name
func (r *AccountRepository) UpdateDisplayName(ctx context.Context, discordID int64, displayName string) error {
	query := `
		UPDATE accounts
		SET display_name = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, displayName, discordID)
	if err != nil {
		return fmt.Errorf("failed to update display name for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// AddBalance adds to an account's balance atomically
func (r *AccountRepository) AddBalance(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to add balance for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// DeductBalance deducts from an account's balance atomically, failing if insufficient funds
func (r *AccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	// Guarded update: only deduct when the balance covers the amount
	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE discord_id = $2
		  AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("insufficient balance or account %d not found", discordID)
	}

	return nil
}

// UpdateProgress writes a normalized xp/level pair
func (r *AccountRepository) UpdateProgress(ctx context.Context, discordID int64, xp, level int64) error {
	query := `
		UPDATE accounts
		SET xp = $1, level = $2, updated_at = NOW()
		WHERE discord_id = $3
	`

	result, err := r.q.Exec(ctx, query, xp, level, discordID)
	if err != nil {
		return fmt.Errorf("failed to update progress for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// RecordOutcome increments wins or losses together with games_played
func (r *AccountRepository) RecordOutcome(ctx context.Context, discordID int64, won bool) error {
	query := `
		UPDATE accounts
		SET wins = wins + $1, losses = losses + $2, games_played = games_played + 1, updated_at = NOW()
		WHERE discord_id = $3
	`

	winInc, lossInc := int64(0), int64(1)
	if won {
		winInc, lossInc = 1, 0
	}

	result, err := r.q.Exec(ctx, query, winInc, lossInc, discordID)
	if err != nil {
		return fmt.Errorf("failed to record outcome for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// SetLastDaily records the time of a daily bonus claim
func (r *AccountRepository) SetLastDaily(ctx context.Context, discordID int64, claimedAt time.Time) error {
	query := `
		UPDATE accounts
		SET last_daily = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, claimedAt, discordID)
	if err != nil {
		return fmt.Errorf("failed to set last daily for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account with discord ID %d not found", discordID)
	}

	return nil
}

// GetTop returns the highest-level accounts for the leaderboard
func (r *AccountRepository) GetTop(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT display_name, level, xp, balance, wins
		FROM accounts
		ORDER BY level DESC, xp DESC, balance DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.DisplayName, &e.Level, &e.XP, &e.Balance, &e.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard entries: %w", err)
	}

	return entries, nil
}
