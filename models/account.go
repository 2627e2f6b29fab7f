package models

import (
	"time"
)

// Account represents a player with a balance and progression state.
// XP is always kept in [0, LEVEL_XP); Level never drops below 1.
type Account struct {
	DiscordID   int64     `db:"discord_id"`
	DisplayName string    `db:"display_name"`
	Balance     int64     `db:"balance"`
	XP          int64     `db:"xp"`
	Level       int64     `db:"level"`
	Wins        int64     `db:"wins"`
	Losses      int64     `db:"losses"`
	GamesPlayed int64     `db:"games_played"`
	LastDaily   time.Time `db:"last_daily"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// WinRate returns the fraction of played games the account has won.
func (a *Account) WinRate() float64 {
	if a.GamesPlayed == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.GamesPlayed)
}

// DailyClaimResult represents the outcome of a daily bonus claim
type DailyClaimResult struct {
	Reward       int64
	XP           int64
	LevelsGained int64
	NewBalance   int64
}

// TransferResult represents the outcome of a transfer (returned to the user)
type TransferResult struct {
	Amount        int64
	RecipientName string
	NewBalance    int64
}

// LeaderboardEntry is one row of the economy leaderboard
type LeaderboardEntry struct {
	DisplayName string
	Level       int64
	XP          int64
	Balance     int64
	Wins        int64
}
