package games

import (
	"strings"
	"time"

	"arcade/models"
)

// RewardThreshold is the minimum fraction of correct answers that earns
// the quiz reward.
const RewardThreshold = 0.70

// QuizRun is the play-through state machine over a snapshot of a quiz's
// question list. One run per player; transitions happen under the player's
// scope lock.
type QuizRun struct {
	quiz      models.Quiz
	questions []models.QuizQuestion
	index     int
	score     int64
	correct   int64
	startedAt time.Time
}

// AnswerResult describes the effect of one answer event
type AnswerResult struct {
	Correct       bool
	CorrectOption string
	Finished      bool
}

// NewQuizRun snapshots the question list and starts at the first question
func NewQuizRun(quiz models.Quiz, questions []models.QuizQuestion, now time.Time) *QuizRun {
	return &QuizRun{
		quiz:      quiz,
		questions: questions,
		startedAt: now,
	}
}

// Quiz returns the quiz definition this run was started from
func (r *QuizRun) Quiz() models.Quiz {
	return r.quiz
}

// Current returns the question awaiting an answer, or nil when finished
func (r *QuizRun) Current() *models.QuizQuestion {
	if r.index >= len(r.questions) {
		return nil
	}
	return &r.questions[r.index]
}

// Index returns the zero-based position of the current question
func (r *QuizRun) Index() int {
	return r.index
}

// Total returns the number of questions in the snapshot
func (r *QuizRun) Total() int {
	return len(r.questions)
}

// Finished reports whether every question has been answered
func (r *QuizRun) Finished() bool {
	return r.index >= len(r.questions)
}

// Answer compares the submitted option letter against the current
// question and advances, right or wrong. On a finished run it is a
// terminal no-op so a late answer event cannot run past the snapshot.
func (r *QuizRun) Answer(option string) AnswerResult {
	if r.Finished() {
		return AnswerResult{Finished: true}
	}
	question := r.questions[r.index]
	result := AnswerResult{CorrectOption: question.CorrectOption}

	if strings.EqualFold(strings.TrimSpace(option), question.CorrectOption) {
		points := question.Points
		if points <= 0 {
			points = 10
		}
		r.score += points
		r.correct++
		result.Correct = true
	}

	r.index++
	result.Finished = r.Finished()
	return result
}

// Summary produces the terminal quiz result; the reward flag is set only
// when the correct-answer ratio reaches the threshold.
func (r *QuizRun) Summary(now time.Time) models.QuizResult {
	total := int64(len(r.questions))
	percentage := 0.0
	if total > 0 {
		percentage = float64(r.correct) / float64(total)
	}
	rewarded := percentage >= RewardThreshold

	result := models.QuizResult{
		QuizName:       r.quiz.Name,
		Score:          r.score,
		CorrectAnswers: r.correct,
		TotalQuestions: total,
		TimeTaken:      int64(now.Sub(r.startedAt).Seconds()),
		Percentage:     percentage * 100,
		Rewarded:       rewarded,
	}
	if rewarded {
		result.Reward = r.quiz.Reward
		result.XPReward = r.quiz.XPReward
	}
	return result
}
