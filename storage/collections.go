package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"clementus360/goal-tracker/types"
)

const (
	GoalsKey = "goaltracker.goals"
	UsersKey = "goaltracker.users"
)

// Collections serializes the two whole collections, goals and users, in and
// out of a KV. Writers go through Mutate so concurrent requests do not lose
// each other's read-modify-write.
type Collections struct {
	kv KV
	mu sync.Mutex
}

func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

func (c *Collections) LoadGoals(ctx context.Context) ([]types.Goal, error) {
	goals := []types.Goal{}
	if err := c.load(ctx, GoalsKey, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Collections) LoadUsers(ctx context.Context) ([]types.User, error) {
	users := []types.User{}
	if err := c.load(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// MutateGoals loads the goals, hands them to fn and writes back whatever fn
// returns. Nothing is written when fn fails.
func (c *Collections) MutateGoals(ctx context.Context, fn func([]types.Goal) ([]types.Goal, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	goals := []types.Goal{}
	if err := c.load(ctx, GoalsKey, &goals); err != nil {
		return err
	}
	next, err := fn(goals)
	if err != nil {
		return err
	}
	return c.save(ctx, GoalsKey, next)
}

func (c *Collections) MutateUsers(ctx context.Context, fn func([]types.User) ([]types.User, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users := []types.User{}
	if err := c.load(ctx, UsersKey, &users); err != nil {
		return err
	}
	next, err := fn(users)
	if err != nil {
		return err
	}
	return c.save(ctx, UsersKey, next)
}

func (c *Collections) load(ctx context.Context, key string, into any) error {
	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (c *Collections) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
