package keeper

import (
	"sync"

	"github.com/nativeswap/nativeswap/x/shared/types"
)

// ReentrancyGuard provides named in-memory locks. A lock is held for the
// lifetime of one mutating call; a nested call that asks for the same name
// is rejected instead of blocking.
type ReentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewReentrancyGuard creates a new guard instance.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{locks: make(map[string]struct{})}
}

// Lock acquires a named lock or returns an error if already held.
func (g *ReentrancyGuard) Lock(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.locks[key]; exists {
		return types.ErrReentrancy.Wrapf("reentrancy detected for %s", key)
	}

	g.locks[key] = struct{}{}
	return nil
}

// Unlock releases a named lock.
func (g *ReentrancyGuard) Unlock(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
}

// Held reports whether key is currently locked.
func (g *ReentrancyGuard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.locks[key]
	return ok
}

// Run executes fn while holding key. The lock is released even if fn panics.
func (g *ReentrancyGuard) Run(key string, fn func() error) error {
	if err := g.Lock(key); err != nil {
		return err
	}
	defer g.Unlock(key)
	return fn()
}
