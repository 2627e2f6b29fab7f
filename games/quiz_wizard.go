package games

import (
	"errors"
	"strings"

	"arcade/models"
)

// WizardState is the authoring wizard's conversational state
type WizardState int

const (
	WizardAwaitingName WizardState = iota
	WizardAwaitingQuestion
	WizardAwaitingAnswers
	WizardAwaitingCorrectOption
	WizardAwaitingMore
	WizardFinished
	WizardCancelled
)

var (
	// ErrWizardState is returned when an input arrives in a state that
	// cannot accept it (e.g. an answer set before a question).
	ErrWizardState = errors.New("unexpected input for the current wizard step")
	// ErrTooFewOptions rejects answer sets with fewer than two options
	ErrTooFewOptions = errors.New("a question needs at least 2 answer options")
	// ErrInvalidOption rejects a correct-option letter outside the range
	// of the just-entered answer set.
	ErrInvalidOption = errors.New("correct option is out of range")
	// ErrNoQuestions rejects finishing a quiz with no accumulated questions
	ErrNoQuestions = errors.New("a quiz needs at least one question")
	// ErrEmptyInput rejects blank names and question texts
	ErrEmptyInput = errors.New("input must not be empty")
)

// maxOptions caps the answer set; extra options are silently truncated
const maxOptions = 4

// QuizWizard collects a quiz draft through a fixed conversation:
// name, then per question its text, answers and correct option, then a
// choice between another question and finishing. Cancel is valid from
// every non-terminal state and discards the draft.
type QuizWizard struct {
	state     WizardState
	creatorID int64

	name         string
	questionText string
	options      []string
	questions    []models.QuizQuestion
}

// NewQuizWizard starts a draft for the given creator
func NewQuizWizard(creatorID int64) *QuizWizard {
	return &QuizWizard{
		state:     WizardAwaitingName,
		creatorID: creatorID,
	}
}

// State returns the wizard's current conversational state
func (w *QuizWizard) State() WizardState {
	return w.state
}

// CreatorID returns the drafting player
func (w *QuizWizard) CreatorID() int64 {
	return w.creatorID
}

// QuestionCount returns the number of accumulated questions
func (w *QuizWizard) QuestionCount() int {
	return len(w.questions)
}

// Options returns the answer set of the question being drafted
func (w *QuizWizard) Options() []string {
	return w.options
}

// SetName accepts the quiz name and moves on to the first question
func (w *QuizWizard) SetName(name string) error {
	if w.state != WizardAwaitingName {
		return ErrWizardState
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyInput
	}
	w.name = name
	w.state = WizardAwaitingQuestion
	return nil
}

// SetQuestionText accepts the next question's text
func (w *QuizWizard) SetQuestionText(text string) error {
	if w.state != WizardAwaitingQuestion {
		return ErrWizardState
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	w.questionText = text
	w.state = WizardAwaitingAnswers
	return nil
}

// SetAnswers accepts the answer set for the question being drafted.
// Fewer than 2 options is rejected; more than 4 are truncated.
func (w *QuizWizard) SetAnswers(answers []string) error {
	if w.state != WizardAwaitingAnswers {
		return ErrWizardState
	}

	cleaned := make([]string, 0, len(answers))
	for _, a := range answers {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	if len(cleaned) < 2 {
		return ErrTooFewOptions
	}
	if len(cleaned) > maxOptions {
		cleaned = cleaned[:maxOptions]
	}

	w.options = cleaned
	w.state = WizardAwaitingCorrectOption
	return nil
}

// SetCorrectOption accepts the letter of the correct answer and stores the
// completed question. The letter must index into the entered answer set.
func (w *QuizWizard) SetCorrectOption(letter string) error {
	if w.state != WizardAwaitingCorrectOption {
		return ErrWizardState
	}

	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 {
		return ErrInvalidOption
	}
	index := int(letter[0] - 'A')
	if index < 0 || index >= len(w.options) {
		return ErrInvalidOption
	}

	w.questions = append(w.questions, models.QuizQuestion{
		Text:          w.questionText,
		Options:       w.options,
		CorrectOption: letter,
	})
	w.questionText = ""
	w.options = nil
	w.state = WizardAwaitingMore
	return nil
}

// AddAnother loops back for one more question
func (w *QuizWizard) AddAnother() error {
	if w.state != WizardAwaitingMore {
		return ErrWizardState
	}
	w.state = WizardAwaitingQuestion
	return nil
}

// Finish closes the draft and returns the quiz name with its questions.
// At least one accumulated question is required.
func (w *QuizWizard) Finish() (string, []models.QuizQuestion, error) {
	if w.state != WizardAwaitingMore {
		return "", nil, ErrWizardState
	}
	if len(w.questions) == 0 {
		return "", nil, ErrNoQuestions
	}
	w.state = WizardFinished
	return w.name, w.questions, nil
}

// Cancel discards the draft; valid from every non-terminal state
func (w *QuizWizard) Cancel() error {
	if w.state == WizardFinished || w.state == WizardCancelled {
		return ErrWizardState
	}
	w.state = WizardCancelled
	return nil
}
