package handlers

import (
	"context"
	"net/http"

	"clementus360/goal-tracker/goals"
	"clementus360/goal-tracker/types"
)

// withStore opens the session's store and hands it to fn.
func (h *Handler) withStore(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, store *goals.Store)) {
	session, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	store, err := h.openStore(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, "load goals")
		return
	}
	fn(r.Context(), store)
}

func writeGoal(w http.ResponseWriter, status int, goal types.Goal) {
	resp := types.GoalResponse{Success: true}
	// An empty id means the operation hit a missing goal in a mode where
	// that is not an error.
	if goal.ID != "" {
		resp.Goal = &goal
	}
	writeJSON(w, status, resp)
}

func (h *Handler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	h.withStore(w, r, func(_ context.Context, store *goals.Store) {
		query := r.URL.Query()
		list := goals.Filter(store.Goals(), types.GoalFilter{
			Category: query.Get("category"),
			Status:   query.Get("status"),
			DueDate:  query.Get("due"),
		})
		if sortKey := query.Get("sort"); sortKey != "" {
			goals.Sort(list, sortKey)
		}

		writeJSON(w, http.StatusOK, types.GetGoalsResponse{
			Success: true,
			Goals:   list,
			Total:   len(list),
		})
	})
}

func (h *Handler) GetSingleGoalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.withStore(w, r, func(_ context.Context, store *goals.Store) {
		goal, found := store.Goal(id)
		if !found {
			writeError(w, "Goal not found", http.StatusNotFound)
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var input types.GoalInput
	if !decodeBody(w, r, &input) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.CreateGoal(ctx, input)
		if err != nil {
			writeServiceError(w, err, "create goal")
			return
		}
		writeGoal(w, http.StatusCreated, goal)
	})
}

func (h *Handler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var update types.GoalUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.UpdateGoal(ctx, id, update)
		if err != nil {
			writeServiceError(w, err, "update goal")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		if err := store.DeleteGoal(ctx, id); err != nil {
			writeServiceError(w, err, "delete goal")
			return
		}
		writeJSON(w, http.StatusOK, types.DeleteGoalResponse{Success: true, Message: "Goal deleted"})
	})
}

func (h *Handler) AddSubtaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req types.SubtaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.AddSubtask(ctx, id, req.Text)
		if err != nil {
			writeServiceError(w, err, "add subtask")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) ToggleSubtaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	subtaskID := r.URL.Query().Get("subtask")
	if subtaskID == "" {
		writeError(w, "Missing subtask ID", http.StatusBadRequest)
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.ToggleSubtask(ctx, id, subtaskID)
		if err != nil {
			writeServiceError(w, err, "toggle subtask")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) AddJournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var input types.JournalInput
	if !decodeBody(w, r, &input) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.AddJournalEntry(ctx, id, input)
		if err != nil {
			writeServiceError(w, err, "add journal entry")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) SetWeeklyStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req types.WeeklyStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.SetWeeklyStatus(ctx, id, req.Status)
		if err != nil {
			writeServiceError(w, err, "set weekly status")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) SetProgressHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req types.ProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.SetProgress(ctx, id, req.Progress)
		if err != nil {
			writeServiceError(w, err, "set progress")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) ToggleCompleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.withStore(w, r, func(ctx context.Context, store *goals.Store) {
		goal, err := store.ToggleComplete(ctx, id)
		if err != nil {
			writeServiceError(w, err, "toggle completion")
			return
		}
		writeGoal(w, http.StatusOK, goal)
	})
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	h.withStore(w, r, func(_ context.Context, store *goals.Store) {
		writeJSON(w, http.StatusOK, types.StatsResponse{
			Success: true,
			Stats:   goals.ComputeStats(store.Goals(), h.clock.Now()),
		})
	})
}

func (h *Handler) BoardHandler(w http.ResponseWriter, r *http.Request) {
	h.withStore(w, r, func(_ context.Context, store *goals.Store) {
		list := store.Goals()
		writeJSON(w, http.StatusOK, types.BoardResponse{
			Success:  true,
			Board:    goals.BuildWeeklyBoard(list),
			CoachTip: goals.CoachTip(list),
			Proof:    goals.ProofTimeline(list),
		})
	})
}
