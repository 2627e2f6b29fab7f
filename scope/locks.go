package scope

import (
	"fmt"
	"sync"
)

// Chat builds the scope key for state shared by everyone in a chat/channel.
// Multiplayer games lock on this key.
func Chat(channelID int64) string {
	return fmt.Sprintf("chat:%d", channelID)
}

// Player builds the scope key for state owned by a single player. Solo games
// and economic actions (bets, loans, daily claims) lock on this key.
func Player(discordID int64) string {
	return fmt.Sprintf("player:%d", discordID)
}

// LockRegistry hands out one mutex per scope key. Locks are created lazily
// on first use and retained for the process lifetime; the map grows with the
// number of distinct scopes and is never pruned.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockRegistry creates an empty lock registry
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{
		locks: make(map[string]*sync.Mutex),
	}
}

// Acquire blocks until the lock for the given scope key is held and returns
// a guard. Every read-decide-write sequence against session or ledger state
// for a scope must run between Acquire and Release of that scope's guard.
func (r *LockRegistry) Acquire(key string) *Guard {
	r.mu.Lock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return &Guard{lock: lock, key: key}
}

// Guard represents a held scope lock. Release is idempotent so it is safe
// to defer and also call early on a fast path.
type Guard struct {
	lock     *sync.Mutex
	key      string
	released bool
}

// Key returns the scope key this guard protects
func (g *Guard) Key() string {
	return g.key
}

// Release unlocks the scope. Subsequent calls are no-ops.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.lock.Unlock()
}
