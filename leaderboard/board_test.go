package leaderboard

import (
	"context"
	"testing"
	"time"

	"arcade/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScores plays the SQL score history during rebuilds
type stubScores struct {
	entries  []*models.QuizTopEntry
	topCalls int
}

func (s *stubScores) Create(ctx context.Context, score *models.QuizScore) error {
	return nil
}

func (s *stubScores) TopPlayers(ctx context.Context, limit int) ([]*models.QuizTopEntry, error) {
	s.topCalls++
	return s.entries, nil
}

func (s *stubScores) TotalScoreByPlayer(ctx context.Context, discordID int64) (int64, error) {
	for _, e := range s.entries {
		if e.DiscordID == discordID {
			return e.TotalScore, nil
		}
	}
	return 0, nil
}

func newTestBoard(t *testing.T, scores *stubScores) *Board {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewBoard(client, scores, time.Minute)
}

func TestBoard_RebuildsFromSQLOnMiss(t *testing.T) {
	ctx := context.Background()
	scores := &stubScores{entries: []*models.QuizTopEntry{
		{DiscordID: 1, TotalScore: 90},
		{DiscordID: 2, TotalScore: 40},
	}}
	board := newTestBoard(t, scores)

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{DiscordID: 1, Score: 90}, top[0])
	assert.Equal(t, Entry{DiscordID: 2, Score: 40}, top[1])
	assert.Equal(t, 1, scores.topCalls)

	// Warm reads never go back to SQL
	_, err = board.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, scores.topCalls)
}

func TestBoard_RecordRefreshesWarmBoard(t *testing.T) {
	ctx := context.Background()
	scores := &stubScores{entries: []*models.QuizTopEntry{
		{DiscordID: 1, TotalScore: 90},
	}}
	board := newTestBoard(t, scores)

	// Warm the board, then commit two runs for a new player
	_, err := board.Top(ctx, 10)
	require.NoError(t, err)

	scores.entries = append(scores.entries, &models.QuizTopEntry{DiscordID: 2, TotalScore: 60})
	require.NoError(t, board.Record(ctx, 2))

	scores.entries[1].TotalScore = 110
	require.NoError(t, board.Record(ctx, 2))

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{DiscordID: 2, Score: 110}, top[0])
	assert.Equal(t, Entry{DiscordID: 1, Score: 90}, top[1])

	total, err := board.Score(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(110), total)
}

func TestBoard_RecordNeverDoubleCounts(t *testing.T) {
	ctx := context.Background()
	// SQL already holds the run being recorded; the cold board rebuilds
	// from it, so the set contains the run before Record touches it
	scores := &stubScores{entries: []*models.QuizTopEntry{
		{DiscordID: 1, TotalScore: 50},
	}}
	board := newTestBoard(t, scores)

	require.NoError(t, board.Record(ctx, 1))

	total, err := board.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
	assert.Equal(t, 1, scores.topCalls)

	// Recording again against the warm set stays at the SQL aggregate
	require.NoError(t, board.Record(ctx, 1))

	total, err = board.Score(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
	assert.Equal(t, 1, scores.topCalls)
}

func TestBoard_EmptyHistory(t *testing.T) {
	ctx := context.Background()
	board := newTestBoard(t, &stubScores{})

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	total, err := board.Score(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBoard_TopRespectsLimit(t *testing.T) {
	ctx := context.Background()
	scores := &stubScores{entries: []*models.QuizTopEntry{
		{DiscordID: 1, TotalScore: 90},
		{DiscordID: 2, TotalScore: 80},
		{DiscordID: 3, TotalScore: 70},
	}}
	board := newTestBoard(t, scores)

	top, err := board.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(1), top[0].DiscordID)
	assert.Equal(t, int64(2), top[1].DiscordID)
}
