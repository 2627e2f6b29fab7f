package models

// GameKind identifies one of the arcade's game state machines
type GameKind string

const (
	GameKindHangman    GameKind = "hangman"
	GameKindBlackjack  GameKind = "blackjack"
	GameKindSlots      GameKind = "slots"
	GameKindQuizPlay   GameKind = "quiz_play"
	GameKindQuizAuthor GameKind = "quiz_author"
)

// GameOutcome is the terminal result of a game, as applied to the ledger
type GameOutcome struct {
	Kind         GameKind
	Won          bool
	Payout       int64 // total credited on win (includes returned stake)
	XP           int64
	LevelsGained int64
	NewBalance   int64
}
