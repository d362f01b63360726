package goals

import (
	"testing"

	"clementus360/goal-tracker/types"

	"github.com/stretchr/testify/assert"
)

func sampleGoals() []types.Goal {
	return []types.Goal{
		{ID: "a", Category: types.CategoryHealth, Progress: 40, DueDate: "2025-05-01", CreatedAt: 1},
		{ID: "b", Category: types.CategoryCareer, Progress: 100, Completed: true, DueDate: "2025-04-01", CreatedAt: 3},
		{ID: "c", Category: types.CategoryHealth, Progress: 10, DueDate: "2025-04-01", CreatedAt: 2},
	}
}

func ids(list []types.Goal) []string {
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter types.GoalFilter
		want   []string
	}{
		{"everything", types.GoalFilter{}, []string{"a", "b", "c"}},
		{"all category", types.GoalFilter{Category: "all"}, []string{"a", "b", "c"}},
		{"health", types.GoalFilter{Category: "Health"}, []string{"a", "c"}},
		{"completed", types.GoalFilter{Status: "completed"}, []string{"b"}},
		{"active health", types.GoalFilter{Category: "Health", Status: "active"}, []string{"a", "c"}},
		{"due date", types.GoalFilter{DueDate: "2025-04-01"}, []string{"b", "c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(sampleGoals(), tc.filter)))
		})
	}
}

func TestSort(t *testing.T) {
	cases := []struct {
		key  string
		want []string
	}{
		{SortCreated, []string{"b", "c", "a"}},
		{"unknown", []string{"b", "c", "a"}},
		{SortDueDate, []string{"b", "c", "a"}},
		{SortProgressDesc, []string{"b", "a", "c"}},
		{SortProgressAsc, []string{"c", "a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			list := sampleGoals()
			Sort(list, tc.key)
			assert.Equal(t, tc.want, ids(list))
		})
	}
}
