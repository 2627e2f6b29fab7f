package models

import "time"

// Quiz represents a player-authored quiz definition
type Quiz struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	CreatorID   int64     `db:"creator_id"`
	Category    string    `db:"category"`
	Difficulty  string    `db:"difficulty"`
	Reward      int64     `db:"reward"`
	XPReward    int64     `db:"xp_reward"`
	IsPublic    bool      `db:"is_public"`
	TimesPlayed int64     `db:"times_played"`
	CreatedAt   time.Time `db:"created_at"`

	// QuestionCount is populated by list queries only
	QuestionCount int64 `db:"-"`
}

// QuizQuestion is a single question of a quiz. Options holds 2 to 4 answer
// texts; CorrectOption is the letter A..D indexing into them.
type QuizQuestion struct {
	ID            int64  `db:"id"`
	QuizID        int64  `db:"quiz_id"`
	Text          string `db:"question_text"`
	Options       []string
	CorrectOption string `db:"correct_option"`
	Points        int64  `db:"points"`
	TimeLimit     int64  `db:"time_limit"`
}

// OptionLetter returns the letter for a zero-based option index
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// QuizScore is an append-only record of one completed quiz run
type QuizScore struct {
	ID             int64     `db:"id"`
	QuizID         int64     `db:"quiz_id"`
	DiscordID      int64     `db:"discord_id"`
	Score          int64     `db:"score"`
	CorrectAnswers int64     `db:"correct_answers"`
	TotalQuestions int64     `db:"total_questions"`
	TimeTaken      int64     `db:"time_taken"`
	CompletedAt    time.Time `db:"completed_at"`
}

// QuizResult is returned to the player when a quiz run finishes
type QuizResult struct {
	QuizName       string
	Score          int64
	CorrectAnswers int64
	TotalQuestions int64
	TimeTaken      int64
	Percentage     float64
	Rewarded       bool
	Reward         int64
	XPReward       int64
}

// QuizTopEntry is one row of the quiz leaderboard
type QuizTopEntry struct {
	DiscordID   int64
	DisplayName string
	TotalScore  int64
	Games       int64
	Correct     int64
	Total       int64
}
