package goals

import (
	"slices"

	"clementus360/goal-tracker/types"
)

// AddJournalEntry records a check-in on today and updates the streak policy:
//
//	no prior check-in, or one day later  -> streak + 1
//	same day (or a future last date)     -> counters unchanged
//	gap with freeze tokens left          -> one token spent, streak + 1
//	gap with no tokens                   -> streak restarts at 1
//
// The entry is always prepended, even on a repeated same-day check-in.
func AddJournalEntry(m types.Meta, entry types.JournalEntry, today string) types.Meta {
	out := m.Clone()

	diff := 1
	if out.LastCheckinDate != "" {
		if d, ok := DaysBetween(out.LastCheckinDate, today); ok {
			diff = d
		}
	}

	switch {
	case diff <= 0:
	case diff == 1:
		out.StreakCount++
	case out.FreezeTokens > 0:
		out.FreezeTokens--
		out.StreakCount++
	default:
		out.StreakCount = 1
	}

	entry.Date = today
	journal := make([]types.JournalEntry, 0, min(len(out.Journal)+1, types.MaxJournalEntries))
	journal = append(journal, entry)
	journal = append(journal, out.Journal...)
	if len(journal) > types.MaxJournalEntries {
		journal = journal[:types.MaxJournalEntries]
	}
	out.Journal = journal

	if !slices.Contains(out.ConsistencyHistory, today) {
		out.ConsistencyHistory = append(out.ConsistencyHistory, today)
		slices.Sort(out.ConsistencyHistory)
	}

	out.LastCheckinDate = today
	return out
}
