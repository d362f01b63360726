package storage

import (
	"context"
	"slices"
	"time"

	"clementus360/goal-tracker/types"

	"github.com/google/uuid"
)

// LocalGoals keeps goals in the local collections. Unknown ids are tolerated:
// updating or deleting a goal that is not there does nothing.
type LocalGoals struct {
	collections *Collections
	now         func() time.Time
	owner       string
}

func NewLocalGoals(collections *Collections, now func() time.Time) *LocalGoals {
	if now == nil {
		now = time.Now
	}
	return &LocalGoals{collections: collections, now: now}
}

// ForUser returns a view that only updates and deletes goals owned by userID.
func (l *LocalGoals) ForUser(userID string) *LocalGoals {
	scoped := *l
	scoped.owner = userID
	return &scoped
}

func (l *LocalGoals) owns(g types.Goal) bool {
	return l.owner == "" || g.UserID == l.owner
}

func (l *LocalGoals) List(ctx context.Context, userID string) ([]types.Goal, error) {
	all, err := l.collections.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]types.Goal, 0, len(all))
	for _, g := range all {
		if g.UserID == userID {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

// Insert assigns a fresh id and prepends the goal. A goal without a creation
// time is stamped with now.
func (l *LocalGoals) Insert(ctx context.Context, goal types.Goal) (types.Goal, error) {
	created := goal.Clone()
	created.ID = uuid.NewString()
	if created.CreatedAt == 0 {
		created.CreatedAt = l.now().UnixMilli()
	}
	created.Origin = types.Persisted

	err := l.collections.MutateGoals(ctx, func(goals []types.Goal) ([]types.Goal, error) {
		return append([]types.Goal{created}, goals...), nil
	})
	if err != nil {
		return types.Goal{}, err
	}
	return created, nil
}

func (l *LocalGoals) Update(ctx context.Context, goal types.Goal) (types.Goal, error) {
	err := l.collections.MutateGoals(ctx, func(goals []types.Goal) ([]types.Goal, error) {
		for i := range goals {
			if goals[i].ID == goal.ID && l.owns(goals[i]) {
				goals[i] = goal.Clone()
			}
		}
		return goals, nil
	})
	if err != nil {
		return types.Goal{}, err
	}
	return goal, nil
}

func (l *LocalGoals) Delete(ctx context.Context, id string) error {
	return l.collections.MutateGoals(ctx, func(goals []types.Goal) ([]types.Goal, error) {
		return slices.DeleteFunc(goals, func(g types.Goal) bool { return g.ID == id && l.owns(g) }), nil
	})
}

func (l *LocalGoals) MissingGoal(string) error {
	return nil
}
