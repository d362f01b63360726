package goals

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"clementus360/goal-tracker/types"
)

const proofTimelineLimit = 10

// ComputeStats summarizes goals for the progress page.
func ComputeStats(goals []types.Goal, now time.Time) types.GoalStats {
	stats := types.GoalStats{Total: len(goals)}
	if stats.Total == 0 {
		return stats
	}

	today := DateString(now)
	month := today[:7]
	progressSum, streakSum, hits := 0, 0, 0
	for _, g := range goals {
		if g.Completed {
			stats.Completed++
		} else if g.DueDate != "" && g.DueDate < today {
			stats.Overdue++
		}
		progressSum += g.Progress
		if g.Meta != nil {
			streakSum += g.Meta.StreakCount
			for _, d := range g.Meta.ConsistencyHistory {
				if strings.HasPrefix(d, month) {
					hits++
				}
			}
		}
	}

	stats.Active = stats.Total - stats.Completed
	stats.AvgProgress = roundDiv(progressSum, stats.Total)
	stats.StreakAvg = roundDiv(streakSum, stats.Total)
	possible := max(1, stats.Total*now.Day())
	stats.MonthlyConsistency = int(math.Round(float64(hits) / float64(possible) * 100))
	return stats
}

func BuildWeeklyBoard(goals []types.Goal) types.WeeklyBoard {
	board := types.WeeklyBoard{
		ThisWeek: []types.Goal{},
		NextWeek: []types.Goal{},
		Blocked:  []types.Goal{},
	}
	for _, g := range goals {
		switch weeklyStatusOf(g) {
		case types.NextWeek:
			board.NextWeek = append(board.NextWeek, g)
		case types.Blocked:
			board.Blocked = append(board.Blocked, g)
		default:
			board.ThisWeek = append(board.ThisWeek, g)
		}
	}
	return board
}

// CoachTip picks one nudge: the most carried-over goal first, then a goal
// that has never been checked in.
func CoachTip(goals []types.Goal) string {
	if len(goals) == 0 {
		return "Create your first goal and log one check-in to start your momentum."
	}

	topCarry := slices.MaxFunc(goals, func(a, b types.Goal) int {
		return cmp.Compare(carryOverOf(a), carryOverOf(b))
	})
	if carryOverOf(topCarry) > 0 {
		return fmt.Sprintf("Coach: %s keeps carrying over. Break it into 2 subtasks and complete one today.", topCarry.Title)
	}

	stalled := slices.MinFunc(goals, func(a, b types.Goal) int {
		return strings.Compare(lastJournalDate(a), lastJournalDate(b))
	})
	if stalled.Meta == nil || len(stalled.Meta.Journal) == 0 {
		return fmt.Sprintf("Coach: Add a quick check-in for %q to restart progress.", stalled.Title)
	}
	return "Coach: You are on track. Keep daily check-ins and finish one subtask per active goal."
}

// ProofTimeline lists journal entries that carry media, newest first.
func ProofTimeline(goals []types.Goal) []types.ProofItem {
	items := []types.ProofItem{}
	for _, g := range goals {
		if g.Meta == nil {
			continue
		}
		for _, entry := range g.Meta.Journal {
			if entry.Media == nil || entry.Media.DataURL == "" {
				continue
			}
			items = append(items, types.ProofItem{JournalEntry: entry, GoalID: g.ID, GoalTitle: g.Title})
		}
	}
	slices.SortStableFunc(items, func(a, b types.ProofItem) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(items) > proofTimelineLimit {
		items = items[:proofTimelineLimit]
	}
	return items
}

func weeklyStatusOf(g types.Goal) types.WeeklyStatus {
	if g.Meta == nil || g.Meta.WeeklyStatus == "" {
		return types.ThisWeek
	}
	return g.Meta.WeeklyStatus
}

func carryOverOf(g types.Goal) int {
	if g.Meta == nil {
		return 0
	}
	return g.Meta.CarryOverCount
}

func lastJournalDate(g types.Goal) string {
	if g.Meta == nil || len(g.Meta.Journal) == 0 {
		return ""
	}
	return g.Meta.Journal[0].Date
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
