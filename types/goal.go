package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryCareer   Category = "Career"
	CategoryHealth   Category = "Health"
	CategoryFinance  Category = "Finance"
	CategoryLearning Category = "Learning"
)

var Categories = []Category{CategoryPersonal, CategoryCareer, CategoryHealth, CategoryFinance, CategoryLearning}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type WeeklyStatus string

const (
	ThisWeek WeeklyStatus = "thisWeek"
	NextWeek WeeklyStatus = "nextWeek"
	Blocked  WeeklyStatus = "blocked"
)

func (s WeeklyStatus) Valid() bool {
	return s == ThisWeek || s == NextWeek || s == Blocked
}

// Origin tags where a goal lives. Ephemeral goals are demo seeds that are
// never written to any backing store.
type Origin int

const (
	Persisted Origin = iota
	Ephemeral
)

// SeedOwner is the user id shared by every seed goal.
const SeedOwner = "seed"

const (
	DefaultFreezeTokens = 2
	MaxJournalEntries   = 100
)

type Attachment struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	DataURL string `json:"dataUrl"`
}

type Subtask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type JournalEntry struct {
	ID    string      `json:"id"`
	Date  string      `json:"date"`
	Note  string      `json:"note"`
	Media *Attachment `json:"media,omitempty"`
}

// Meta is the tracking block carried by every normalized goal.
type Meta struct {
	Subtasks           []Subtask      `json:"subtasks"`
	WeeklyStatus       WeeklyStatus   `json:"weeklyStatus"`
	WeeklyBucket       string         `json:"weeklyBucket"`
	CarryOverCount     int            `json:"carryOverCount"`
	FreezeTokens       int            `json:"freezeTokens"`
	StreakCount        int            `json:"streakCount"`
	LastCheckinDate    string         `json:"lastCheckinDate"`
	ConsistencyHistory []string       `json:"consistencyHistory"`
	Journal            []JournalEntry `json:"journal"`
}

// UnmarshalJSON starts from the documented defaults so keys missing from
// older blobs keep them instead of collapsing to zero values.
func (m *Meta) UnmarshalJSON(data []byte) error {
	type plain Meta
	decoded := plain{
		WeeklyStatus: ThisWeek,
		FreezeTokens: DefaultFreezeTokens,
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = Meta(decoded)
	return nil
}

// Clone returns a deep copy so callers can mutate slices freely. Empty
// lists stay empty rather than nil so they encode as [].
func (m Meta) Clone() Meta {
	out := m
	out.Subtasks = slices.Clone(m.Subtasks)
	out.ConsistencyHistory = slices.Clone(m.ConsistencyHistory)
	out.Journal = slices.Clone(m.Journal)
	return out
}

type Goal struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    Category
	Progress    int
	DueDate     string
	Completed   bool
	CreatedAt   int64
	Attachment  *Attachment
	Meta        *Meta
	Origin      Origin
}

func (g Goal) Ephemeral() bool {
	return g.Origin == Ephemeral
}

// Clone deep-copies the metadata block and the attachment.
func (g Goal) Clone() Goal {
	out := g
	if g.Meta != nil {
		meta := g.Meta.Clone()
		out.Meta = &meta
	}
	if g.Attachment != nil {
		att := *g.Attachment
		out.Attachment = &att
	}
	return out
}

// goalJSON is the shape shared by the local store and the HTTP API.
type goalJSON struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Progress    int             `json:"progress"`
	DueDate     string          `json:"dueDate"`
	Completed   bool            `json:"completed"`
	CreatedAt   int64           `json:"createdAt"`
	Media       json.RawMessage `json:"media"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
	media, err := EncodeMedia(g.Attachment, g.Meta)
	if err != nil {
		return nil, err
	}
	return json.Marshal(goalJSON{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Progress:    g.Progress,
		DueDate:     g.DueDate,
		Completed:   g.Completed,
		CreatedAt:   g.CreatedAt,
		Media:       media,
	})
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	var raw goalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	attachment, meta, err := DecodeMedia(raw.Media)
	if err != nil {
		return fmt.Errorf("goal %s: %w", raw.ID, err)
	}
	*g = Goal{
		ID:          raw.ID,
		UserID:      raw.UserID,
		Title:       raw.Title,
		Description: raw.Description,
		Category:    raw.Category,
		Progress:    raw.Progress,
		DueDate:     raw.DueDate,
		Completed:   raw.Completed,
		CreatedAt:   raw.CreatedAt,
		Attachment:  attachment,
		Meta:        meta,
	}
	return nil
}

// GoalInput carries the fields a caller supplies when creating a goal.
type GoalInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Progress    int         `json:"progress"`
	DueDate     string      `json:"dueDate"`
	Completed   bool        `json:"completed"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

// GoalUpdate is a partial update. Nil fields are left untouched.
type GoalUpdate struct {
	Title            *string     `json:"title,omitempty"`
	Description      *string     `json:"description,omitempty"`
	Category         *Category   `json:"category,omitempty"`
	Progress         *int        `json:"progress,omitempty"`
	DueDate          *string     `json:"dueDate,omitempty"`
	Completed        *bool       `json:"completed,omitempty"`
	Attachment       *Attachment `json:"attachment,omitempty"`
	RemoveAttachment bool        `json:"removeAttachment,omitempty"`
	Meta             *MetaPatch  `json:"meta,omitempty"`
}

// MetaPatch is merged field by field into an existing metadata block.
type MetaPatch struct {
	Subtasks           *[]Subtask      `json:"subtasks,omitempty"`
	WeeklyStatus       *WeeklyStatus   `json:"weeklyStatus,omitempty"`
	WeeklyBucket       *string         `json:"weeklyBucket,omitempty"`
	CarryOverCount     *int            `json:"carryOverCount,omitempty"`
	FreezeTokens       *int            `json:"freezeTokens,omitempty"`
	StreakCount        *int            `json:"streakCount,omitempty"`
	LastCheckinDate    *string         `json:"lastCheckinDate,omitempty"`
	ConsistencyHistory *[]string       `json:"consistencyHistory,omitempty"`
	Journal            *[]JournalEntry `json:"journal,omitempty"`
}

func (p MetaPatch) Apply(m Meta) Meta {
	out := m.Clone()
	if p.Subtasks != nil {
		out.Subtasks = slices.Clone(*p.Subtasks)
	}
	if p.WeeklyStatus != nil {
		out.WeeklyStatus = *p.WeeklyStatus
	}
	if p.WeeklyBucket != nil {
		out.WeeklyBucket = *p.WeeklyBucket
	}
	if p.CarryOverCount != nil {
		out.CarryOverCount = *p.CarryOverCount
	}
	if p.FreezeTokens != nil {
		out.FreezeTokens = *p.FreezeTokens
	}
	if p.StreakCount != nil {
		out.StreakCount = *p.StreakCount
	}
	if p.LastCheckinDate != nil {
		out.LastCheckinDate = *p.LastCheckinDate
	}
	if p.ConsistencyHistory != nil {
		out.ConsistencyHistory = slices.Clone(*p.ConsistencyHistory)
	}
	if p.Journal != nil {
		out.Journal = slices.Clone(*p.Journal)
	}
	return out
}

// MetaPatchFrom builds a patch that overwrites every field with m.
func MetaPatchFrom(m Meta) *MetaPatch {
	m = m.Clone()
	return &MetaPatch{
		Subtasks:           &m.Subtasks,
		WeeklyStatus:       &m.WeeklyStatus,
		WeeklyBucket:       &m.WeeklyBucket,
		CarryOverCount:     &m.CarryOverCount,
		FreezeTokens:       &m.FreezeTokens,
		StreakCount:        &m.StreakCount,
		LastCheckinDate:    &m.LastCheckinDate,
		ConsistencyHistory: &m.ConsistencyHistory,
		Journal:            &m.Journal,
	}
}

type JournalInput struct {
	Note  string      `json:"note"`
	Media *Attachment `json:"media,omitempty"`
}

type SubtaskRequest struct {
	Text string `json:"text"`
}

type WeeklyStatusRequest struct {
	Status WeeklyStatus `json:"status"`
}

type ProgressRequest struct {
	Progress int `json:"progress"`
}

type GoalResponse struct {
	Success      bool   `json:"success"`
	Goal         *Goal  `json:"goal,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type DeleteGoalResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

type GetGoalsResponse struct {
	Success      bool   `json:"success"`
	Goals        []Goal `json:"goals"`
	Total        int    `json:"total"`
	ErrorMessage string `json:"error,omitempty"`
}
