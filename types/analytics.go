package types

// GoalStats backs the progress page.
type GoalStats struct {
	Total              int `json:"total"`
	Completed          int `json:"completed"`
	Active             int `json:"active"`
	AvgProgress        int `json:"avg_progress"`
	Overdue            int `json:"overdue"`
	StreakAvg          int `json:"streak_avg"`
	MonthlyConsistency int `json:"monthly_consistency"` // percent
}

type WeeklyBoard struct {
	ThisWeek []Goal `json:"this_week"`
	NextWeek []Goal `json:"next_week"`
	Blocked  []Goal `json:"blocked"`
}

// ProofItem is a journal entry with media, labelled with its goal.
type ProofItem struct {
	JournalEntry
	GoalID    string `json:"goal_id"`
	GoalTitle string `json:"goal_title"`
}

type GoalFilter struct {
	Category string `json:"category,omitempty"` // "" or "all" matches everything
	Status   string `json:"status,omitempty"`   // all | active | completed
	DueDate  string `json:"due_date,omitempty"`
}

type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   GoalStats `json:"stats"`
}

type BoardResponse struct {
	Success  bool        `json:"success"`
	Board    WeeklyBoard `json:"board"`
	CoachTip string      `json:"coach_tip"`
	Proof    []ProofItem `json:"proof"`
}
