package goals

import (
	"slices"
	"strings"
	"time"

	"clementus360/goal-tracker/types"
)

// DefaultMeta is the metadata block a goal starts with.
func DefaultMeta(bucket string) types.Meta {
	return types.Meta{
		Subtasks:           []types.Subtask{},
		WeeklyStatus:       types.ThisWeek,
		WeeklyBucket:       bucket,
		FreezeTokens:       types.DefaultFreezeTokens,
		ConsistencyHistory: []string{},
		Journal:            []types.JournalEntry{},
	}
}

// Normalize returns g with every tracking field populated. It is pure and
// idempotent: Normalize(Normalize(g, now), now) equals Normalize(g, now).
func Normalize(g types.Goal, now time.Time) types.Goal {
	out := g.Clone()
	bucket := WeekBucket(now)

	out.Title = strings.TrimSpace(out.Title)
	out.Description = strings.TrimSpace(out.Description)
	if !out.Category.Valid() {
		out.Category = types.CategoryPersonal
	}
	out.Progress = clampProgress(out.Progress)

	var meta types.Meta
	if out.Meta == nil {
		meta = DefaultMeta(bucket)
	} else {
		meta = normalizeMeta(*out.Meta, bucket)
	}
	out.Meta = &meta
	return out
}

func normalizeMeta(m types.Meta, bucket string) types.Meta {
	if m.Subtasks == nil {
		m.Subtasks = []types.Subtask{}
	}
	if !m.WeeklyStatus.Valid() {
		m.WeeklyStatus = types.ThisWeek
	}
	if m.WeeklyBucket == "" {
		m.WeeklyBucket = bucket
	}
	m.CarryOverCount = max(m.CarryOverCount, 0)
	m.FreezeTokens = max(m.FreezeTokens, 0)
	m.StreakCount = max(m.StreakCount, 0)
	m.ConsistencyHistory = sortedDistinct(m.ConsistencyHistory)
	if m.Journal == nil {
		m.Journal = []types.JournalEntry{}
	}
	if len(m.Journal) > types.MaxJournalEntries {
		m.Journal = m.Journal[:types.MaxJournalEntries]
	}
	return m
}

func sortedDistinct(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if d != "" {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func clampProgress(p int) int {
	return min(max(p, 0), 100)
}
