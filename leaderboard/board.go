package leaderboard

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"arcade/service"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	// boardKey is the sorted set of cumulative quiz scores per player
	boardKey = "quiz:leaderboard"

	// boardCapacity bounds how many players a rebuild pulls from SQL
	boardCapacity = 1000
)

// Entry is one player's cumulative quiz score
type Entry struct {
	DiscordID int64
	Score     int64
}

// Board keeps cumulative quiz scores in a Redis sorted set and rebuilds it
// from the SQL score history on cache miss. The sorted set is a read
// accelerator: SQL remains the source of truth, and callers are expected to
// fall back to it when Redis is unavailable.
type Board struct {
	client *redis.Client
	scores service.QuizScoreRepository
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

// NewBoard creates a leaderboard over the given Redis client, backed by the
// SQL score repository for rebuilds. A non-positive ttl keeps the set forever.
func NewBoard(client *redis.Client, scores service.QuizScoreRepository, ttl time.Duration) *Board {
	return &Board{
		client: client,
		scores: scores,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Record refreshes the player's cumulative total after a run commits.
// The run is already in SQL, so the aggregate read back is authoritative;
// writing it absolutely, rather than incrementing, keeps Record idempotent
// against a concurrent rebuild that already counted the run.
func (b *Board) Record(ctx context.Context, discordID int64) error {
	if err := b.ensure(ctx); err != nil {
		return err
	}

	total, err := b.scores.TotalScoreByPlayer(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to read cumulative score: %w", err)
	}

	member := strconv.FormatInt(discordID, 10)
	if err := b.client.ZAdd(ctx, boardKey, redis.Z{Member: member, Score: float64(total)}).Err(); err != nil {
		return fmt.Errorf("failed to update leaderboard score: %w", err)
	}
	return nil
}

// Top returns the highest cumulative scores, best first
func (b *Board) Top(ctx context.Context, limit int) ([]Entry, error) {
	if err := b.ensure(ctx); err != nil {
		return nil, err
	}

	members, err := b.client.ZRevRangeWithScores(ctx, boardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m.Member.(string), 10, 64)
		if err != nil || id == 0 {
			// 0 is the empty-board marker, never a real player
			continue
		}
		entries = append(entries, Entry{DiscordID: id, Score: int64(m.Score)})
	}
	return entries, nil
}

// Score returns one player's cumulative total, zero when unranked
func (b *Board) Score(ctx context.Context, discordID int64) (int64, error) {
	if err := b.ensure(ctx); err != nil {
		return 0, err
	}

	score, err := b.client.ZScore(ctx, boardKey, strconv.FormatInt(discordID, 10)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read leaderboard score: %w", err)
	}
	return int64(score), nil
}

// ensure rebuilds the sorted set from SQL when it is missing. Concurrent
// rebuilds are collapsed into one SQL query.
func (b *Board) ensure(ctx context.Context) error {
	exists, err := b.client.Exists(ctx, boardKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check leaderboard: %w", err)
	}
	if exists > 0 {
		return nil
	}

	_, err, _ = b.sf.Do(boardKey, func() (any, error) {
		// Re-check in case another goroutine rebuilt it first
		exists, err := b.client.Exists(ctx, boardKey).Result()
		if err != nil {
			return nil, err
		}
		if exists > 0 {
			return nil, nil
		}

		top, err := b.scores.TopPlayers(ctx, boardCapacity)
		if err != nil {
			return nil, fmt.Errorf("failed to load scores for rebuild: %w", err)
		}

		members := make([]redis.Z, 0, len(top))
		for _, entry := range top {
			members = append(members, redis.Z{
				Member: strconv.FormatInt(entry.DiscordID, 10),
				Score:  float64(entry.TotalScore),
			})
		}

		pipe := b.client.Pipeline()
		if len(members) > 0 {
			pipe.ZAdd(ctx, boardKey, members...)
		} else {
			// Keep an empty marker so every miss does not hit SQL
			pipe.ZAdd(ctx, boardKey, redis.Z{Member: "0", Score: 0})
		}
		if ttl := b.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, boardKey, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to rebuild leaderboard: %w", err)
		}
		return nil, nil
	})
	return err
}

// ttlWithJitter spreads expiries so rebuilds do not pile up
func (b *Board) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
