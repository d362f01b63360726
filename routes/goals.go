package routes

import (
	"net/http"

	"clementus360/goal-tracker/handlers"
)

// RegisterGoalRoutes registers all goal-related routes
func RegisterGoalRoutes(mux *http.ServeMux, h *handlers.Handler, auth func(http.Handler) http.Handler) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth(fn))
	}

	handle("GET /goals", h.GetGoalsHandler)
	handle("GET /goal", h.GetSingleGoalHandler)
	handle("POST /goals/create", h.CreateGoalHandler)
	handle("PATCH /goals/update", h.UpdateGoalHandler)
	handle("DELETE /goals/delete", h.DeleteGoalHandler)

	handle("POST /goals/subtasks", h.AddSubtaskHandler)
	handle("POST /goals/subtasks/toggle", h.ToggleSubtaskHandler)
	handle("POST /goals/journal", h.AddJournalEntryHandler)
	handle("PATCH /goals/weekly", h.SetWeeklyStatusHandler)
	handle("PATCH /goals/progress", h.SetProgressHandler)
	handle("POST /goals/complete", h.ToggleCompleteHandler)

	handle("GET /goals/stats", h.StatsHandler)
	handle("GET /goals/board", h.BoardHandler)
}
