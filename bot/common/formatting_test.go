package common

import (
	"errors"
	"testing"
	"time"

	"arcade/scope"
	"arcade/service"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoins(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{987654, "987,654"},
		{1234567890, "1,234,567,890"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCoins(tt.amount))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "< 1m", FormatDuration(30*time.Second))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "3h 45m", FormatDuration(3*time.Hour+45*time.Minute))
	assert.Equal(t, "2d 14h 30m", FormatDuration(62*time.Hour+30*time.Minute))
}

func TestMedalForRank(t *testing.T) {
	assert.Equal(t, "🥇", MedalForRank(1))
	assert.Equal(t, "🥉", MedalForRank(3))
	assert.Equal(t, "4.", MedalForRank(4))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "You don't have enough coins for that.", UserMessage(service.ErrInsufficientFunds))
	assert.Equal(t, "A game is already running here. Finish or stop it first.", UserMessage(scope.ErrSessionConflict))

	cooldown := &service.DailyCooldownError{Remaining: 90 * time.Minute}
	assert.Contains(t, UserMessage(cooldown), "1h 30m")

	assert.Equal(t, "Something went wrong. Please try again later.", UserMessage(errors.New("pg: down")))
}
