package service

import (
	"context"
	"testing"
	"time"

	"arcade/events"
	"arcade/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetProfile(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("returns account with loan statements", func(t *testing.T) {
		deps := newMockDeps()
		svc := NewStatsService(deps.factory, deps.locks, fakeClock{now: now})

		account := &models.Account{DiscordID: 42, DisplayName: "alice", Balance: 300, Level: 3, XP: 40}
		deps.accounts.On("GetByDiscordID", mock.Anything, int64(42)).Return(account, nil)
		deps.loans.On("GetByOwner", mock.Anything, int64(42)).Return([]*models.Loan{
			{ID: 1, DiscordID: 42, Principal: 100, CreatedAt: now.Add(-48 * time.Hour)},
			{ID: 2, DiscordID: 42, Principal: 200, CreatedAt: now},
		}, nil)

		got, statements, err := svc.GetProfile(context.Background(), 42, "alice")
		require.NoError(t, err)
		assert.Equal(t, account, got)

		require.Len(t, statements, 2)
		// 100 * 1.07^2 truncated
		assert.Equal(t, int64(114), statements[0].Debt)
		// A loan taken this instant owes exactly its principal
		assert.Equal(t, int64(200), statements[1].Debt)
	})

	t.Run("creates account on first sighting", func(t *testing.T) {
		deps := newMockDeps()
		svc := NewStatsService(deps.factory, deps.locks, fakeClock{now: now})

		created := &models.Account{DiscordID: 42, DisplayName: "alice", Balance: 500, Level: 1}
		deps.accounts.On("GetByDiscordID", mock.Anything, int64(42)).Return(nil, nil)
		deps.accounts.On("Create", mock.Anything, int64(42), "alice", int64(500)).Return(created, nil)
		deps.loans.On("GetByOwner", mock.Anything, int64(42)).Return([]*models.Loan{}, nil)

		got, statements, err := svc.GetProfile(context.Background(), 42, "alice")
		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Empty(t, statements)

		require.Len(t, deps.bus.byType(events.EventTypeAccountCreated), 1)
	})
}

func TestStatsService_GetLeaderboard(t *testing.T) {
	deps := newMockDeps()
	svc := NewStatsService(deps.factory, deps.locks, fakeClock{})

	entries := []*models.LeaderboardEntry{
		{DisplayName: "alice", Level: 5, XP: 10, Balance: 900, Wins: 12},
		{DisplayName: "bob", Level: 4, XP: 80, Balance: 1200, Wins: 9},
	}
	deps.accounts.On("GetTop", mock.Anything, 10).Return(entries, nil)

	got, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
