package goals

import (
	"time"

	"clementus360/goal-tracker/types"
)

// SeedPrefix marks the ids of demo goals.
const SeedPrefix = "seed-"

// SeedGoals returns the demo goals shown to every user. They are ephemeral:
// mutations stay in the session's memory.
func SeedGoals(now time.Time) []types.Goal {
	base := now.AddDate(0, 0, -30).UnixMilli()
	seeds := []types.Goal{
		{
			ID:          SeedPrefix + "run-5k",
			Title:       "Run a 5k",
			Description: "Build up to running 5 kilometres without stopping.",
			Category:    types.CategoryHealth,
			Progress:    40,
			DueDate:     DateString(now.AddDate(0, 2, 0)),
			CreatedAt:   base + 2,
			Meta: &types.Meta{
				FreezeTokens: types.DefaultFreezeTokens,
				Subtasks: []types.Subtask{
					{ID: SeedPrefix + "run-5k-1", Text: "Run 1k", Done: true},
					{ID: SeedPrefix + "run-5k-2", Text: "Run 3k", Done: true},
					{ID: SeedPrefix + "run-5k-3", Text: "Run 5k"},
				},
			},
		},
		{
			ID:          SeedPrefix + "read-books",
			Title:       "Read 12 books",
			Description: "One book a month.",
			Category:    types.CategoryLearning,
			Progress:    25,
			CreatedAt:   base + 1,
		},
		{
			ID:          SeedPrefix + "emergency-fund",
			Title:       "Save an emergency fund",
			Description: "Three months of expenses.",
			Category:    types.CategoryFinance,
			Progress:    10,
			CreatedAt:   base,
		},
	}

	for i := range seeds {
		seeds[i].UserID = types.SeedOwner
		seeds[i].Origin = types.Ephemeral
		seeds[i] = Normalize(seeds[i], now)
	}
	return seeds
}
