package repository

import (
	"context"
	"fmt"

	"arcade/database"
	"arcade/models"
	"github.com/jackc/pgx/v5"
)

// QuizRepository implements the QuizRepository interface
type QuizRepository struct {
	q queryable
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *database.DB) *QuizRepository {
	return &QuizRepository{q: db.Pool}
}

// newQuizRepositoryWithTx creates a new quiz repository with a transaction
func newQuizRepositoryWithTx(tx queryable) *QuizRepository {
	return &QuizRepository{q: tx}
}

// CreateWithQuestions inserts a quiz and its questions in one shot.
// Meant to run inside a unit of work so a partial insert never survives.
func (r *QuizRepository) CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.QuizQuestion) error {
	query := `
		INSERT INTO quizzes (name, creator_id, category, difficulty, reward, xp_reward, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, times_played, created_at
	`

	err := r.q.QueryRow(ctx, query,
		quiz.Name,
		quiz.CreatorID,
		quiz.Category,
		quiz.Difficulty,
		quiz.Reward,
		quiz.XPReward,
		quiz.IsPublic,
	).Scan(&quiz.ID, &quiz.TimesPlayed, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz %q: %w", quiz.Name, err)
	}

	questionQuery := `
		INSERT INTO quiz_questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_option, points, time_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	for _, question := range questions {
		if len(question.Options) < 2 {
			return fmt.Errorf("question %q has fewer than two options", question.Text)
		}

		var optC, optD *string
		if len(question.Options) > 2 {
			optC = &question.Options[2]
		}
		if len(question.Options) > 3 {
			optD = &question.Options[3]
		}

		if question.Points == 0 {
			question.Points = 10
		}
		if question.TimeLimit == 0 {
			question.TimeLimit = 30
		}

		err := r.q.QueryRow(ctx, questionQuery,
			quiz.ID,
			question.Text,
			question.Options[0],
			question.Options[1],
			optC,
			optD,
			// correct_option is stored as the letter A..D
			question.CorrectOption,
			question.Points,
			question.TimeLimit,
		).Scan(&question.ID)
		if err != nil {
			return fmt.Errorf("failed to create question for quiz %d: %w", quiz.ID, err)
		}
		question.QuizID = quiz.ID
	}

	quiz.QuestionCount = int64(len(questions))
	return nil
}

// GetByID retrieves a quiz by its ID
func (r *QuizRepository) GetByID(ctx context.Context, quizID int64) (*models.Quiz, error) {
	query := `
		SELECT q.id, q.name, q.creator_id, q.category, q.difficulty, q.reward, q.xp_reward,
		       q.is_public, q.times_played, q.created_at,
		       (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id) AS question_count
		FROM quizzes q
		WHERE q.id = $1
	`

	quiz, err := scanQuiz(r.q.QueryRow(ctx, query, quizID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz %d: %w", quizID, err)
	}

	return quiz, nil
}

// GetQuestions returns the questions of a quiz in stored order
func (r *QuizRepository) GetQuestions(ctx context.Context, quizID int64) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_option, points, time_limit
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %d: %w", quizID, err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var (
			question   models.QuizQuestion
			optA, optB string
			optC, optD *string
		)
		err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.Text,
			&optA,
			&optB,
			&optC,
			&optD,
			&question.CorrectOption,
			&question.Points,
			&question.TimeLimit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		question.Options = []string{optA, optB}
		if optC != nil {
			question.Options = append(question.Options, *optC)
		}
		if optD != nil {
			question.Options = append(question.Options, *optD)
		}

		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// ListPublic returns public quizzes with their question counts
func (r *QuizRepository) ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error) {
	query := `
		SELECT q.id, q.name, q.creator_id, q.category, q.difficulty, q.reward, q.xp_reward,
		       q.is_public, q.times_played, q.created_at,
		       (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id) AS question_count
		FROM quizzes q
		WHERE q.is_public
		ORDER BY q.times_played DESC, q.created_at DESC
		LIMIT $1
	`

	return r.listQuizzes(ctx, query, limit)
}

// ListByCreator returns all quizzes authored by an account
func (r *QuizRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*models.Quiz, error) {
	query := `
		SELECT q.id, q.name, q.creator_id, q.category, q.difficulty, q.reward, q.xp_reward,
		       q.is_public, q.times_played, q.created_at,
		       (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id) AS question_count
		FROM quizzes q
		WHERE q.creator_id = $1
		ORDER BY q.created_at DESC
	`

	return r.listQuizzes(ctx, query, creatorID)
}

func (r *QuizRepository) listQuizzes(ctx context.Context, query string, arg any) ([]*models.Quiz, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quizzes: %w", err)
	}

	return quizzes, nil
}

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	var quiz models.Quiz
	err := row.Scan(
		&quiz.ID,
		&quiz.Name,
		&quiz.CreatorID,
		&quiz.Category,
		&quiz.Difficulty,
		&quiz.Reward,
		&quiz.XPReward,
		&quiz.IsPublic,
		&quiz.TimesPlayed,
		&quiz.CreatedAt,
		&quiz.QuestionCount,
	)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Delete removes a quiz and, via cascade, its questions and scores
func (r *QuizRepository) Delete(ctx context.Context, quizID int64) error {
	query := `DELETE FROM quizzes WHERE id = $1`

	result, err := r.q.Exec(ctx, query, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %d: %w", quizID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quiz %d not found", quizID)
	}

	return nil
}

// IncrementTimesPlayed bumps the play counter once per completed run
func (r *QuizRepository) IncrementTimesPlayed(ctx context.Context, quizID int64) error {
	query := `
		UPDATE quizzes
		SET times_played = times_played + 1
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, quizID)
	if err != nil {
		return fmt.Errorf("failed to increment times played for quiz %d: %w", quizID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quiz %d not found", quizID)
	}

	return nil
}
