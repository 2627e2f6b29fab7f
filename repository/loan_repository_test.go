package repository

import (
	"context"
	"testing"
	"time"

	"arcade/models"
	"arcade/repository/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewLoanRepository(testDB.DB)
	ctx := context.Background()

	_, err := accounts.Create(ctx, 100, "alice", 500)
	require.NoError(t, err)
	_, err = accounts.Create(ctx, 200, "bob", 500)
	require.NoError(t, err)

	t.Run("create fills id and created_at", func(t *testing.T) {
		loan := &models.Loan{DiscordID: 100, Principal: 300}
		require.NoError(t, repo.Create(ctx, loan))
		assert.NotZero(t, loan.ID)
		assert.WithinDuration(t, time.Now(), loan.CreatedAt, time.Minute)
	})

	t.Run("get by owner returns oldest first", func(t *testing.T) {
		second := &models.Loan{DiscordID: 100, Principal: 200}
		require.NoError(t, repo.Create(ctx, second))

		loans, err := repo.GetByOwner(ctx, 100)
		require.NoError(t, err)
		require.Len(t, loans, 2)
		assert.Equal(t, int64(300), loans[0].Principal)
		assert.Equal(t, int64(200), loans[1].Principal)
	})

	t.Run("get for owner enforces ownership", func(t *testing.T) {
		loans, err := repo.GetByOwner(ctx, 100)
		require.NoError(t, err)
		require.NotEmpty(t, loans)

		loan, err := repo.GetForOwner(ctx, loans[0].ID, 100)
		require.NoError(t, err)
		require.NotNil(t, loan)

		// Another account cannot see it
		loan, err = repo.GetForOwner(ctx, loans[0].ID, 200)
		require.NoError(t, err)
		assert.Nil(t, loan)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		loans, err := repo.GetByOwner(ctx, 100)
		require.NoError(t, err)
		require.Len(t, loans, 2)

		require.NoError(t, repo.Delete(ctx, loans[0].ID))

		remaining, err := repo.GetByOwner(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)

		assert.Error(t, repo.Delete(ctx, loans[0].ID))
	})

	t.Run("non-positive principal violates the check constraint", func(t *testing.T) {
		err := repo.Create(ctx, &models.Loan{DiscordID: 100, Principal: 0})
		assert.Error(t, err)
	})
}

func TestWordRepository_Random(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("returns a seeded word", func(t *testing.T) {
		word, err := repo.Random(ctx, "ru")
		require.NoError(t, err)
		assert.NotEmpty(t, word)
	})

	t.Run("unknown language fails", func(t *testing.T) {
		_, err := repo.Random(ctx, "xx")
		assert.Error(t, err)
	})
}
