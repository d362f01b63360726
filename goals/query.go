package goals

import (
	"cmp"
	"slices"
	"strings"

	"clementus360/goal-tracker/types"
)

const (
	SortCreated      = "created"
	SortDueDate      = "dueDate"
	SortProgressDesc = "progressDesc"
	SortProgressAsc  = "progressAsc"
)

func Filter(goals []types.Goal, filter types.GoalFilter) []types.Goal {
	out := make([]types.Goal, 0, len(goals))
	for _, g := range goals {
		if filter.Category != "" && filter.Category != "all" && string(g.Category) != filter.Category {
			continue
		}
		if filter.Status == "completed" && !g.Completed {
			continue
		}
		if filter.Status == "active" && g.Completed {
			continue
		}
		if filter.DueDate != "" && g.DueDate != filter.DueDate {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Sort orders goals in place. Unknown keys fall back to newest first.
func Sort(goals []types.Goal, key string) {
	slices.SortStableFunc(goals, func(a, b types.Goal) int {
		switch key {
		case SortDueDate:
			return strings.Compare(a.DueDate, b.DueDate)
		case SortProgressDesc:
			return cmp.Compare(b.Progress, a.Progress)
		case SortProgressAsc:
			return cmp.Compare(a.Progress, b.Progress)
		default:
			return cmp.Compare(b.CreatedAt, a.CreatedAt)
		}
	})
}
