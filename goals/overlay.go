package goals

import (
	"sync"

	"clementus360/goal-tracker/types"
)

// SeedOverlay holds each user's copy of the demo goals between requests.
// Edits to seeds live here until the user logs out or the process exits;
// they never reach storage. Safe for concurrent use.
type SeedOverlay struct {
	mu    sync.Mutex
	users map[string][]types.Goal
}

func NewSeedOverlay() *SeedOverlay {
	return &SeedOverlay{users: make(map[string][]types.Goal)}
}

// Get returns a copy of the user's seeds. ok is false when the user has no
// overlay yet, which is different from having deleted every seed.
func (o *SeedOverlay) Get(userID string) (seeds []types.Goal, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	held, ok := o.users[userID]
	if !ok {
		return nil, false
	}
	return cloneGoals(held), true
}

func (o *SeedOverlay) Put(userID string, seeds []types.Goal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.users[userID] = cloneGoals(seeds)
}

// Forget drops the user's overlay so the next load starts from fresh seeds.
func (o *SeedOverlay) Forget(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.users, userID)
}

func cloneGoals(goals []types.Goal) []types.Goal {
	out := make([]types.Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}
