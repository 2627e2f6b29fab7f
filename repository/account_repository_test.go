package repository

import (
	"context"
	"testing"
	"time"

	"arcade/repository/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing account returns nil", func(t *testing.T) {
		account, err := repo.GetByDiscordID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create then get", func(t *testing.T) {
		created, err := repo.Create(ctx, 100, "alice", 500)
		require.NoError(t, err)
		assert.Equal(t, int64(500), created.Balance)
		assert.Equal(t, int64(1), created.Level)
		assert.Equal(t, int64(0), created.XP)

		account, err := repo.GetByDiscordID(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "alice", account.DisplayName)
		assert.Equal(t, int64(500), account.Balance)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, 100, "alice", 500)
		assert.Error(t, err)
	})
}

func TestAccountRepository_Balance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 200, "bob", 100)
	require.NoError(t, err)

	t.Run("add balance", func(t *testing.T) {
		require.NoError(t, repo.AddBalance(ctx, 200, 50))

		account, err := repo.GetByDiscordID(ctx, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(150), account.Balance)
	})

	t.Run("deduct balance", func(t *testing.T) {
		require.NoError(t, repo.DeductBalance(ctx, 200, 150))

		account, err := repo.GetByDiscordID(ctx, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("deduct beyond balance fails and leaves the row untouched", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 200, 1)
		assert.Error(t, err)

		account, err := repo.GetByDiscordID(ctx, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		assert.Error(t, repo.AddBalance(ctx, 200, 0))
		assert.Error(t, repo.DeductBalance(ctx, 200, -5))
	})

	t.Run("unknown account", func(t *testing.T) {
		assert.Error(t, repo.AddBalance(ctx, 999, 10))
	})
}

func TestAccountRepository_Progress(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 300, "carol", 500)
	require.NoError(t, err)

	t.Run("update progress", func(t *testing.T) {
		require.NoError(t, repo.UpdateProgress(ctx, 300, 40, 3))

		account, err := repo.GetByDiscordID(ctx, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(40), account.XP)
		assert.Equal(t, int64(3), account.Level)
	})

	t.Run("level below one violates the check constraint", func(t *testing.T) {
		assert.Error(t, repo.UpdateProgress(ctx, 300, 0, 0))
	})

	t.Run("record outcome keeps counters consistent", func(t *testing.T) {
		require.NoError(t, repo.RecordOutcome(ctx, 300, true))
		require.NoError(t, repo.RecordOutcome(ctx, 300, true))
		require.NoError(t, repo.RecordOutcome(ctx, 300, false))

		account, err := repo.GetByDiscordID(ctx, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(2), account.Wins)
		assert.Equal(t, int64(1), account.Losses)
		assert.Equal(t, int64(3), account.GamesPlayed)
	})

	t.Run("set last daily", func(t *testing.T) {
		claimedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SetLastDaily(ctx, 300, claimedAt))

		account, err := repo.GetByDiscordID(ctx, 300)
		require.NoError(t, err)
		assert.True(t, account.LastDaily.Equal(claimedAt))
	})
}

func TestAccountRepository_GetTop(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, "low", 500)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 2, "high", 500)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 3, "mid", 500)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProgress(ctx, 2, 10, 5))
	require.NoError(t, repo.UpdateProgress(ctx, 3, 90, 2))

	entries, err := repo.GetTop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "high", entries[0].DisplayName)
	assert.Equal(t, "mid", entries[1].DisplayName)
}
