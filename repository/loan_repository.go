package repository

import (
	"context"
	"fmt"

	"arcade/database"
	"arcade/models"
	"github.com/jackc/pgx/v5"
)

// LoanRepository implements the LoanRepository interface
type LoanRepository struct {
	q queryable
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *database.DB) *LoanRepository {
	return &LoanRepository{q: db.Pool}
}

// newLoanRepositoryWithTx creates a new loan repository with a transaction
func newLoanRepositoryWithTx(tx queryable) *LoanRepository {
	return &LoanRepository{q: tx}
}

// Create inserts a new loan and fills in its ID and creation time
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	query := `
		INSERT INTO loans (discord_id, principal)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, loan.DiscordID, loan.Principal).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan for account %d: %w", loan.DiscordID, err)
	}

	return nil
}

// GetByOwner returns all outstanding loans of an account, oldest first
func (r *LoanRepository) GetByOwner(ctx context.Context, discordID int64) ([]*models.Loan, error) {
	query := `
		SELECT id, discord_id, principal, created_at
		FROM loans
		WHERE discord_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans for account %d: %w", discordID, err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.DiscordID, &l.Principal, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	return loans, nil
}

// GetForOwner retrieves one loan if it belongs to the account
func (r *LoanRepository) GetForOwner(ctx context.Context, loanID, discordID int64) (*models.Loan, error) {
	query := `
		SELECT id, discord_id, principal, created_at
		FROM loans
		WHERE id = $1 AND discord_id = $2
	`

	var l models.Loan
	err := r.q.QueryRow(ctx, query, loanID, discordID).Scan(&l.ID, &l.DiscordID, &l.Principal, &l.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan %d for account %d: %w", loanID, discordID, err)
	}

	return &l, nil
}

// Delete removes a fully repaid loan
func (r *LoanRepository) Delete(ctx context.Context, loanID int64) error {
	query := `DELETE FROM loans WHERE id = $1`

	result, err := r.q.Exec(ctx, query, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %d: %w", loanID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("loan %d not found", loanID)
	}

	return nil
}
