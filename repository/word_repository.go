package repository

import (
	"context"
	"fmt"

	"arcade/database"
	"github.com/jackc/pgx/v5"
)

// WordRepository implements the WordRepository interface
type WordRepository struct {
	q queryable
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{q: db.Pool}
}

// newWordRepositoryWithTx creates a new word repository with a transaction
func newWordRepositoryWithTx(tx queryable) *WordRepository {
	return &WordRepository{q: tx}
}

// Random returns a uniformly random word for the given language
func (r *WordRepository) Random(ctx context.Context, language string) (string, error) {
	query := `
		SELECT word
		FROM words
		WHERE language = $1
		ORDER BY RANDOM()
		LIMIT 1
	`

	var word string
	err := r.q.QueryRow(ctx, query, language).Scan(&word)
	if err == pgx.ErrNoRows {
		return "", fmt.Errorf("no words available for language %q", language)
	}
	if err != nil {
		return "", fmt.Errorf("failed to pick random word: %w", err)
	}

	return word, nil
}
