package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizWizard_HappyPath(t *testing.T) {
	wizard := NewQuizWizard(42)
	assert.Equal(t, WizardAwaitingName, wizard.State())

	require.NoError(t, wizard.SetName("Capitals"))
	assert.Equal(t, WizardAwaitingQuestion, wizard.State())

	require.NoError(t, wizard.SetQuestionText("Capital of France?"))
	require.NoError(t, wizard.SetAnswers([]string{"Paris", "Lyon", "Nice"}))
	require.NoError(t, wizard.SetCorrectOption("a"))
	assert.Equal(t, WizardAwaitingMore, wizard.State())

	require.NoError(t, wizard.AddAnother())
	require.NoError(t, wizard.SetQuestionText("Capital of Spain?"))
	require.NoError(t, wizard.SetAnswers([]string{"Madrid", "Barcelona"}))
	require.NoError(t, wizard.SetCorrectOption("A"))

	name, questions, err := wizard.Finish()
	require.NoError(t, err)
	assert.Equal(t, "Capitals", name)
	require.Len(t, questions, 2)
	assert.Equal(t, "Capital of France?", questions[0].Text)
	assert.Equal(t, []string{"Paris", "Lyon", "Nice"}, questions[0].Options)
	assert.Equal(t, "A", questions[0].CorrectOption)
	assert.Equal(t, WizardFinished, wizard.State())
}

func TestQuizWizard_RejectsTooFewOptions(t *testing.T) {
	wizard := NewQuizWizard(1)
	require.NoError(t, wizard.SetName("n"))
	require.NoError(t, wizard.SetQuestionText("q"))

	err := wizard.SetAnswers([]string{"only one"})
	assert.ErrorIs(t, err, ErrTooFewOptions)
	// A rejected answer set leaves the wizard waiting for answers
	assert.Equal(t, WizardAwaitingAnswers, wizard.State())

	// Blank lines are not options
	err = wizard.SetAnswers([]string{"one", "   "})
	assert.ErrorIs(t, err, ErrTooFewOptions)
}

func TestQuizWizard_TruncatesBeyondFourOptions(t *testing.T) {
	wizard := NewQuizWizard(1)
	require.NoError(t, wizard.SetName("n"))
	require.NoError(t, wizard.SetQuestionText("q"))

	require.NoError(t, wizard.SetAnswers([]string{"a", "b", "c", "d", "e", "f"}))
	assert.Len(t, wizard.Options(), 4)
}

func TestQuizWizard_RejectsCorrectOptionOutOfRange(t *testing.T) {
	wizard := NewQuizWizard(1)
	require.NoError(t, wizard.SetName("n"))
	require.NoError(t, wizard.SetQuestionText("q"))
	require.NoError(t, wizard.SetAnswers([]string{"a", "b"}))

	assert.ErrorIs(t, wizard.SetCorrectOption("C"), ErrInvalidOption)
	assert.ErrorIs(t, wizard.SetCorrectOption("1"), ErrInvalidOption)
	assert.ErrorIs(t, wizard.SetCorrectOption("AB"), ErrInvalidOption)

	require.NoError(t, wizard.SetCorrectOption("B"))
	assert.Equal(t, 1, wizard.QuestionCount())
}

func TestQuizWizard_FinishRequiresQuestions(t *testing.T) {
	wizard := NewQuizWizard(1)
	require.NoError(t, wizard.SetName("n"))

	// Finish is only reachable from AwaitingMore
	_, _, err := wizard.Finish()
	assert.ErrorIs(t, err, ErrWizardState)
}

func TestQuizWizard_CancelFromEveryNonTerminalState(t *testing.T) {
	advance := []func(w *QuizWizard){
		func(w *QuizWizard) {},
		func(w *QuizWizard) { _ = w.SetName("n") },
		func(w *QuizWizard) { _ = w.SetQuestionText("q") },
		func(w *QuizWizard) { _ = w.SetAnswers([]string{"a", "b"}) },
		func(w *QuizWizard) { _ = w.SetCorrectOption("A") },
	}

	for depth := range advance {
		wizard := NewQuizWizard(1)
		for i := 0; i <= depth; i++ {
			advance[i](wizard)
		}
		require.NoError(t, wizard.Cancel(), "cancel failed at depth %d", depth)
		assert.Equal(t, WizardCancelled, wizard.State())

		// Inputs after cancellation are rejected
		assert.ErrorIs(t, wizard.SetName("again"), ErrWizardState)
	}
}

func TestQuizWizard_RejectsOutOfOrderInput(t *testing.T) {
	wizard := NewQuizWizard(1)

	assert.ErrorIs(t, wizard.SetQuestionText("q"), ErrWizardState)
	assert.ErrorIs(t, wizard.SetAnswers([]string{"a", "b"}), ErrWizardState)
	assert.ErrorIs(t, wizard.SetCorrectOption("A"), ErrWizardState)
	assert.ErrorIs(t, wizard.AddAnother(), ErrWizardState)

	assert.ErrorIs(t, wizard.SetName("  "), ErrEmptyInput)
}
