package supabase

import (
	"context"
	"fmt"

	"clementus360/goal-tracker/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// RemoteGoals stores one user's goals in the Supabase goals table. Backend
// failures come back as RemoteError carrying the backend's message.
type RemoteGoals struct {
	client *supabase.Client
	userID string
}

func NewRemoteGoals(client *supabase.Client, userID string) *RemoteGoals {
	return &RemoteGoals{client: client, userID: userID}
}

func (r *RemoteGoals) List(_ context.Context, userID string) ([]types.Goal, error) {
	resp, _, err := r.client.From(goalsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, types.RemoteError(fmt.Errorf("failed to fetch goals: %w", err))
	}

	goals, err := decodeRows(resp)
	if err != nil {
		return nil, types.RemoteError(err)
	}
	return goals, nil
}

func (r *RemoteGoals) Insert(_ context.Context, goal types.Goal) (types.Goal, error) {
	payload, err := payloadFromGoal(goal, r.userID)
	if err != nil {
		return types.Goal{}, err
	}

	resp, _, err := r.client.From(goalsTable).
		Insert(payload, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.Goal{}, types.RemoteError(fmt.Errorf("failed to insert goal: %w", err))
	}
	return singleGoal(resp, "insert returned no goal")
}

func (r *RemoteGoals) Update(_ context.Context, goal types.Goal) (types.Goal, error) {
	payload, err := payloadFromGoal(goal, "")
	if err != nil {
		return types.Goal{}, err
	}

	resp, _, err := r.client.From(goalsTable).
		Update(payload, "representation", "").
		Eq("id", goal.ID).
		Eq("user_id", r.userID).
		Execute()
	if err != nil {
		return types.Goal{}, types.RemoteError(fmt.Errorf("failed to update goal: %w", err))
	}
	return singleGoal(resp, "no goal with id "+goal.ID)
}

func (r *RemoteGoals) Delete(_ context.Context, id string) error {
	resp, _, err := r.client.From(goalsTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("user_id", r.userID).
		Execute()
	if err != nil {
		return types.RemoteError(fmt.Errorf("failed to delete goal: %w", err))
	}

	deleted, err := decodeRows(resp)
	if err != nil {
		return types.RemoteError(err)
	}
	if len(deleted) == 0 {
		return types.RemoteError(fmt.Errorf("no goal with id %s", id))
	}
	return nil
}

func (r *RemoteGoals) MissingGoal(id string) error {
	return types.NotFoundError("Goal not found: " + id)
}

func singleGoal(resp []byte, emptyMessage string) (types.Goal, error) {
	goals, err := decodeRows(resp)
	if err != nil {
		return types.Goal{}, types.RemoteError(err)
	}
	if len(goals) == 0 {
		return types.Goal{}, types.RemoteError(fmt.Errorf("%s", emptyMessage))
	}
	return goals[0], nil
}
