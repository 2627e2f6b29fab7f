package games

import (
	"strings"
	"unicode"
)

// HangmanStatus is the lifecycle state of a hangman game
type HangmanStatus int

const (
	HangmanActive HangmanStatus = iota
	HangmanWon
	HangmanLost
)

// GuessOutcome classifies the effect of a single guess
type GuessOutcome int

const (
	// GuessRepeat means the letter was already guessed; nothing changes
	GuessRepeat GuessOutcome = iota
	// GuessHit means a novel correct letter was revealed
	GuessHit
	// GuessMiss means a wrong guess was charged against the attempt limit
	GuessMiss
	// GuessWon means the guess completed the word
	GuessWon
	// GuessLost means the guess exhausted the attempt limit
	GuessLost
)

// DefaultMaxWrong is the number of wrong guesses that loses a hangman game
const DefaultMaxWrong = 6

// Hangman is the word-guess state machine. It is shared by a whole chat, so
// all transitions must happen under the chat's scope lock.
type Hangman struct {
	word     []rune
	guessed  map[rune]bool
	wrong    int
	maxWrong int
	status   HangmanStatus
}

// NewHangman starts a game over the given target word
func NewHangman(word string, maxWrong int) *Hangman {
	return &Hangman{
		word:     []rune(strings.ToLower(word)),
		guessed:  make(map[rune]bool),
		maxWrong: maxWrong,
	}
}

// Word returns the target word
func (g *Hangman) Word() string {
	return string(g.word)
}

// Wrong returns the number of wrong guesses so far
func (g *Hangman) Wrong() int {
	return g.wrong
}

// MaxWrong returns the wrong-guess limit
func (g *Hangman) MaxWrong() int {
	return g.maxWrong
}

// Status returns the current lifecycle state
func (g *Hangman) Status() HangmanStatus {
	return g.status
}

// Mask renders the word with unguessed letters replaced by underscores,
// space-separated: "д _ м".
func (g *Hangman) Mask() string {
	parts := make([]string, len(g.word))
	for i, r := range g.word {
		if g.guessed[r] {
			parts[i] = string(r)
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

func (g *Hangman) revealed() bool {
	for _, r := range g.word {
		if !g.guessed[r] {
			return false
		}
	}
	return true
}

// GuessLetter processes a single-letter guess
func (g *Hangman) GuessLetter(letter rune) GuessOutcome {
	letter = unicode.ToLower(letter)

	if g.guessed[letter] {
		return GuessRepeat
	}
	g.guessed[letter] = true

	if !strings.ContainsRune(string(g.word), letter) {
		return g.chargeMiss()
	}

	if g.revealed() {
		g.status = HangmanWon
		return GuessWon
	}
	return GuessHit
}

// GuessWord processes a full-word guess. A wrong word costs one attempt,
// same as a wrong letter.
func (g *Hangman) GuessWord(word string) GuessOutcome {
	if strings.ToLower(strings.TrimSpace(word)) == string(g.word) {
		g.status = HangmanWon
		return GuessWon
	}
	return g.chargeMiss()
}

func (g *Hangman) chargeMiss() GuessOutcome {
	g.wrong++
	if g.wrong >= g.maxWrong {
		g.status = HangmanLost
		return GuessLost
	}
	return GuessMiss
}

// Hangman rewards, applied by the game service on terminal outcomes
const (
	HangmanLetterReward = 100 // completing the word letter by letter
	HangmanLetterXP     = 30
	HangmanWordReward   = 150 // guessing the whole word at once
	HangmanWordXP       = 50
)
