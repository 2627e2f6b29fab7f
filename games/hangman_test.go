package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHangman_WinByLetters(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	assert.Equal(t, "_ _ _", game.Mask())

	assert.Equal(t, GuessHit, game.GuessLetter('д'))
	assert.Equal(t, GuessHit, game.GuessLetter('о'))
	assert.Equal(t, GuessWon, game.GuessLetter('м'))

	assert.Equal(t, HangmanWon, game.Status())
	assert.Equal(t, 0, game.Wrong())
	assert.Equal(t, "д о м", game.Mask())
}

func TestHangman_LetterOrderDoesNotMatter(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	assert.Equal(t, GuessHit, game.GuessLetter('м'))
	assert.Equal(t, GuessHit, game.GuessLetter('д'))
	assert.Equal(t, GuessWon, game.GuessLetter('о'))
	assert.Equal(t, HangmanWon, game.Status())
}

func TestHangman_LoseAfterSixWrongLetters(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	wrong := []rune{'а', 'б', 'в', 'г', 'е', 'ж'}
	for i, letter := range wrong {
		outcome := game.GuessLetter(letter)
		if i < len(wrong)-1 {
			assert.Equal(t, GuessMiss, outcome)
		} else {
			assert.Equal(t, GuessLost, outcome)
		}
	}

	assert.Equal(t, HangmanLost, game.Status())
	assert.Equal(t, 6, game.Wrong())
}

func TestHangman_RepeatedLetterIsNoOp(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	assert.Equal(t, GuessHit, game.GuessLetter('д'))
	assert.Equal(t, GuessRepeat, game.GuessLetter('д'))
	assert.Equal(t, 0, game.Wrong())

	// Repeating a wrong letter must not cost a second attempt
	assert.Equal(t, GuessMiss, game.GuessLetter('х'))
	assert.Equal(t, GuessRepeat, game.GuessLetter('х'))
	assert.Equal(t, 1, game.Wrong())
}

func TestHangman_FullWordGuess(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	assert.Equal(t, GuessWon, game.GuessWord("Дом"))
	assert.Equal(t, HangmanWon, game.Status())
}

func TestHangman_WrongWordCountsAsOneAttempt(t *testing.T) {
	game := NewHangman("дом", DefaultMaxWrong)

	assert.Equal(t, GuessMiss, game.GuessWord("кот"))
	assert.Equal(t, 1, game.Wrong())

	// Five more wrong words reach the limit
	for i := 0; i < 4; i++ {
		assert.Equal(t, GuessMiss, game.GuessWord("нет"))
	}
	assert.Equal(t, GuessLost, game.GuessWord("мимо"))
	assert.Equal(t, HangmanLost, game.Status())
}

func TestHangman_CaseInsensitive(t *testing.T) {
	game := NewHangman("ДОМ", DefaultMaxWrong)

	assert.Equal(t, GuessHit, game.GuessLetter('Д'))
	assert.Equal(t, "д _ _", game.Mask())
}
