package storage

import (
	"context"
	"testing"
	"time"

	"clementus360/goal-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)
}

func TestLocalGoalsInsertAndList(t *testing.T) {
	ctx := context.Background()
	local := NewLocalGoals(NewCollections(openTestKV(t)), fixedNow)

	first, err := local.Insert(ctx, types.Goal{UserID: "u1", Title: "first"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, fixedNow().UnixMilli(), first.CreatedAt)

	_, err = local.Insert(ctx, types.Goal{UserID: "u2", Title: "someone else"})
	require.NoError(t, err)
	second, err := local.Insert(ctx, types.Goal{UserID: "u1", Title: "second"})
	require.NoError(t, err)

	mine, err := local.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestLocalGoalsInsertKeepsGivenCreationTime(t *testing.T) {
	local := NewLocalGoals(NewCollections(NewMemoryKV()), fixedNow)

	created, err := local.Insert(context.Background(), types.Goal{UserID: "u1", Title: "dated", CreatedAt: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.CreatedAt)
}

func TestLocalGoalsRoundTripsMedia(t *testing.T) {
	ctx := context.Background()
	local := NewLocalGoals(NewCollections(NewMemoryKV()), fixedNow)

	meta := types.Meta{
		Subtasks:     []types.Subtask{{ID: "s1", Text: "one", Done: true}},
		WeeklyStatus: types.Blocked,
		WeeklyBucket: "2025-03-10",
		FreezeTokens: 1,
		StreakCount:  3,
		Journal:      []types.JournalEntry{{ID: "j1", Date: "2025-03-11", Note: "ran"}},
	}
	created, err := local.Insert(ctx, types.Goal{
		UserID:     "u1",
		Title:      "Run",
		Attachment: &types.Attachment{Name: "plan.pdf", Type: "application/pdf", DataURL: "data:application/pdf;base64,AA=="},
		Meta:       &meta,
	})
	require.NoError(t, err)

	list, err := local.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Attachment)
	assert.Equal(t, "plan.pdf", got.Attachment.Name)
	require.NotNil(t, got.Meta)
	assert.Equal(t, types.Blocked, got.Meta.WeeklyStatus)
	assert.Equal(t, 1, got.Meta.FreezeTokens)
	assert.Equal(t, meta.Subtasks, got.Meta.Subtasks)
	assert.Equal(t, meta.Journal, got.Meta.Journal)
}

func TestLocalGoalsUpdateAndDeleteAreScopedAndTolerant(t *testing.T) {
	ctx := context.Background()
	collections := NewCollections(NewMemoryKV())
	local := NewLocalGoals(collections, fixedNow)

	mine, err := local.Insert(ctx, types.Goal{UserID: "u1", Title: "mine"})
	require.NoError(t, err)
	theirs, err := local.Insert(ctx, types.Goal{UserID: "u2", Title: "theirs"})
	require.NoError(t, err)

	scoped := local.ForUser("u1")

	mine.Title = "renamed"
	_, err = scoped.Update(ctx, mine)
	require.NoError(t, err)

	theirs.Title = "hijacked"
	_, err = scoped.Update(ctx, theirs)
	require.NoError(t, err)
	require.NoError(t, scoped.Delete(ctx, theirs.ID))

	_, err = scoped.Update(ctx, types.Goal{ID: "missing", UserID: "u1"})
	require.NoError(t, err)
	require.NoError(t, scoped.Delete(ctx, "missing"))
	assert.NoError(t, scoped.MissingGoal("missing"))

	all, err := collections.LoadGoals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, g := range all {
		switch g.ID {
		case mine.ID:
			assert.Equal(t, "renamed", g.Title)
		case theirs.ID:
			assert.Equal(t, "theirs", g.Title)
		}
	}

	require.NoError(t, scoped.Delete(ctx, mine.ID))
	all, err = collections.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
