package supabase

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"clementus360/goal-tracker/types"
)

const goalsTable = "goals"

// goalRow is one row of the goals table as PostgREST returns it.
type goalRow struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Progress    float64         `json:"progress"`
	DueDate     *string         `json:"due_date"`
	Completed   bool            `json:"completed"`
	Media       json.RawMessage `json:"media"`
	CreatedAt   time.Time       `json:"created_at"`
}

// goalPayload is what we send on insert and update. id and created_at are
// assigned by the database.
type goalPayload struct {
	UserID      string          `json:"user_id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Progress    int             `json:"progress"`
	DueDate     *string         `json:"due_date"`
	Completed   bool            `json:"completed"`
	Media       json.RawMessage `json:"media"`
}

func (r goalRow) toGoal() (types.Goal, error) {
	attachment, meta, err := types.DecodeMedia(r.Media)
	if err != nil {
		return types.Goal{}, fmt.Errorf("goal %s: %w", r.ID, err)
	}

	goal := types.Goal{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    types.Category(r.Category),
		Progress:    int(math.Round(r.Progress)),
		Completed:   r.Completed,
		Attachment:  attachment,
		Meta:        meta,
	}
	if goal.Category == "" {
		goal.Category = types.CategoryPersonal
	}
	if r.DueDate != nil {
		goal.DueDate = *r.DueDate
	}
	if !r.CreatedAt.IsZero() {
		goal.CreatedAt = r.CreatedAt.UnixMilli()
	}
	return goal, nil
}

func payloadFromGoal(g types.Goal, userID string) (goalPayload, error) {
	media, err := types.EncodeMedia(g.Attachment, g.Meta)
	if err != nil {
		return goalPayload{}, err
	}

	payload := goalPayload{
		UserID:      userID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Progress:    g.Progress,
		Completed:   g.Completed,
		Media:       media,
	}
	if g.DueDate != "" {
		due := g.DueDate
		payload.DueDate = &due
	}
	return payload, nil
}

func decodeRows(raw []byte) ([]types.Goal, error) {
	var rows []goalRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode goal rows: %w", err)
	}

	goals := make([]types.Goal, 0, len(rows))
	for _, row := range rows {
		goal, err := row.toGoal()
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
