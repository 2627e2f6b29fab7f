package repository

import (
	"context"
	"fmt"

	"arcade/database"
	"arcade/models"
)

// QuizScoreRepository implements the QuizScoreRepository interface
type QuizScoreRepository struct {
	q queryable
}

// NewQuizScoreRepository creates a new quiz score repository
func NewQuizScoreRepository(db *database.DB) *QuizScoreRepository {
	return &QuizScoreRepository{q: db.Pool}
}

// newQuizScoreRepositoryWithTx creates a new quiz score repository with a transaction
func newQuizScoreRepositoryWithTx(tx queryable) *QuizScoreRepository {
	return &QuizScoreRepository{q: tx}
}

// Create appends a completed-run record
func (r *QuizScoreRepository) Create(ctx context.Context, score *models.QuizScore) error {
	query := `
		INSERT INTO quiz_scores (quiz_id, discord_id, score, correct_answers, total_questions, time_taken)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, completed_at
	`

	err := r.q.QueryRow(ctx, query,
		score.QuizID,
		score.DiscordID,
		score.Score,
		score.CorrectAnswers,
		score.TotalQuestions,
		score.TimeTaken,
	).Scan(&score.ID, &score.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record quiz score for account %d: %w", score.DiscordID, err)
	}

	return nil
}

// TopPlayers aggregates total scores across all runs
func (r *QuizScoreRepository) TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error) {
	query := `
		SELECT s.discord_id,
		       COALESCE(a.display_name, '') AS display_name,
		       SUM(s.score) AS total_score,
		       COUNT(*) AS games,
		       SUM(s.correct_answers) AS correct,
		       SUM(s.total_questions) AS total
		FROM quiz_scores s
		LEFT JOIN accounts a ON a.discord_id = s.discord_id
		GROUP BY s.discord_id, a.display_name
		ORDER BY total_score DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top quiz players: %w", err)
	}
	defer rows.Close()

	var entries []*models.QuizTopEntry
	for rows.Next() {
		var e models.QuizTopEntry
		err := rows.Scan(&e.DiscordID, &e.DisplayName, &e.TotalScore, &e.Games, &e.Correct, &e.Total)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz top entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quiz top entries: %w", err)
	}

	return entries, nil
}

// TotalScoreByPlayer returns one player's aggregate score
func (r *QuizScoreRepository) TotalScoreByPlayer(ctx context.Context, discordID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(score), 0)
		FROM quiz_scores
		WHERE discord_id = $1
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total quiz score for account %d: %w", discordID, err)
	}

	return total, nil
}
