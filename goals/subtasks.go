package goals

import (
	"math"
	"strings"

	"clementus360/goal-tracker/types"
)

// SubtaskProgress applies the ratio rule: progress is the rounded share of
// done subtasks and the goal is complete once it reaches 100.
func SubtaskProgress(subtasks []types.Subtask) (progress int, completed bool) {
	if len(subtasks) == 0 {
		return 0, false
	}
	done := 0
	for _, s := range subtasks {
		if s.Done {
			done++
		}
	}
	progress = int(math.Round(float64(done) / float64(len(subtasks)) * 100))
	return progress, progress >= 100
}

// ToggleSubtask flips one subtask and returns the resulting update. ok is
// false when the goal has no subtask with that id.
func ToggleSubtask(g types.Goal, subtaskID string) (update types.GoalUpdate, ok bool) {
	if g.Meta == nil {
		return types.GoalUpdate{}, false
	}
	subtasks := append([]types.Subtask(nil), g.Meta.Subtasks...)
	for i := range subtasks {
		if subtasks[i].ID == subtaskID {
			subtasks[i].Done = !subtasks[i].Done
			ok = true
			break
		}
	}
	if !ok {
		return types.GoalUpdate{}, false
	}

	progress, completed := SubtaskProgress(subtasks)
	return types.GoalUpdate{
		Progress:  &progress,
		Completed: &completed,
		Meta:      &types.MetaPatch{Subtasks: &subtasks},
	}, true
}

// AppendSubtask returns the update adding a new open subtask, or ok=false
// when text is blank.
func AppendSubtask(g types.Goal, id, text string) (update types.GoalUpdate, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.GoalUpdate{}, false
	}
	var subtasks []types.Subtask
	if g.Meta != nil {
		subtasks = append(subtasks, g.Meta.Subtasks...)
	}
	subtasks = append(subtasks, types.Subtask{ID: id, Text: text})
	return types.GoalUpdate{Meta: &types.MetaPatch{Subtasks: &subtasks}}, true
}
