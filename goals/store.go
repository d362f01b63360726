package goals

import (
	"context"
	"slices"
	"strings"
	"time"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Storage is the persistence capability behind a Store. One implementation
// is picked when the store is built; the store never branches on mode.
type Storage interface {
	// List returns the user's goals, newest first.
	List(ctx context.Context, userID string) ([]types.Goal, error)
	// Insert persists a new goal and returns it with its id set. Backends
	// that assign their own creation time may replace CreatedAt.
	Insert(ctx context.Context, goal types.Goal) (types.Goal, error)
	// Update overwrites the stored goal (last write wins).
	Update(ctx context.Context, goal types.Goal) (types.Goal, error)
	Delete(ctx context.Context, id string) error
	// MissingGoal reports how an operation on an id the store does not hold
	// should fail. A nil result makes the operation a silent no-op.
	MissingGoal(id string) error
}

// Store is the goal facade for one signed-in session. It keeps the session's
// goals in memory, newest first, followed by the demo seeds. A Store is not
// safe for concurrent use.
type Store struct {
	session types.Session
	storage Storage
	clock   Clock
	logger  logrus.FieldLogger
	newID   func() string
	seeds   bool
	overlay *SeedOverlay

	goals []types.Goal
}

type Option func(*Store)

func WithClock(clock Clock) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSeeds controls whether Load appends the demo goals.
func WithSeeds(enabled bool) Option {
	return func(s *Store) { s.seeds = enabled }
}

// WithSeedOverlay keeps seed edits in overlay so they outlive this Store.
func WithSeedOverlay(overlay *SeedOverlay) Option {
	return func(s *Store) { s.overlay = overlay }
}

func NewStore(session types.Session, storage Storage, opts ...Option) *Store {
	s := &Store{
		session: session,
		storage: storage,
		clock:   SystemClock(),
		logger:  config.Logger,
		newID:   uuid.NewString,
		seeds:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Session() types.Session { return s.session }

// Load fetches the session's goals, normalizes them and applies the weekly
// rollover. Goals whose bucket moved are written back; a failed write is
// logged and the rolled-over state is kept in memory.
func (s *Store) Load(ctx context.Context) error {
	now := s.clock.Now()

	fetched, err := s.storage.List(ctx, s.session.User.ID)
	if err != nil {
		return err
	}

	loaded := make([]types.Goal, 0, len(fetched)+3)
	for _, goal := range fetched {
		goal = Normalize(goal, now)
		rolled, changed := Rollover(goal, now)
		if changed {
			if _, err := s.storage.Update(ctx, rolled); err != nil {
				s.logger.WithError(err).WithField("goal_id", goal.ID).Warn("Failed to persist weekly rollover")
			}
		}
		loaded = append(loaded, rolled)
	}

	slices.SortStableFunc(loaded, func(a, b types.Goal) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})

	if s.seeds {
		loaded = append(loaded, s.loadSeeds(now)...)
	}
	s.goals = loaded
	return nil
}

// Goals returns a copy of the held collection in display order.
func (s *Store) Goals() []types.Goal {
	out := make([]types.Goal, len(s.goals))
	for i, g := range s.goals {
		out[i] = g.Clone()
	}
	return out
}

func (s *Store) Goal(id string) (types.Goal, bool) {
	if i := s.index(id); i >= 0 {
		return s.goals[i].Clone(), true
	}
	return types.Goal{}, false
}

func (s *Store) CreateGoal(ctx context.Context, input types.GoalInput) (types.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return types.Goal{}, types.ValidationError("Title is required")
	}

	now := s.clock.Now()
	goal := Normalize(types.Goal{
		UserID:      s.session.User.ID,
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Progress:    input.Progress,
		DueDate:     strings.TrimSpace(input.DueDate),
		Completed:   input.Completed,
		CreatedAt:   now.UnixMilli(),
		Attachment:  input.Attachment,
	}, now)

	created, err := s.storage.Insert(ctx, goal)
	if err != nil {
		return types.Goal{}, err
	}
	created = Normalize(created, now)

	s.goals = append([]types.Goal{created}, s.goals...)
	s.logger.WithField("goal_id", created.ID).Debug("Goal created")
	return created.Clone(), nil
}

// UpdateGoal applies a partial update. Metadata is merged field by field,
// never replaced wholesale.
func (s *Store) UpdateGoal(ctx context.Context, id string, update types.GoalUpdate) (types.Goal, error) {
	i := s.index(id)
	if i < 0 {
		return types.Goal{}, s.storage.MissingGoal(id)
	}

	now := s.clock.Now()
	next, err := applyUpdate(s.goals[i], update, now)
	if err != nil {
		return types.Goal{}, err
	}

	if !next.Ephemeral() {
		saved, err := s.storage.Update(ctx, next)
		if err != nil {
			return types.Goal{}, err
		}
		next = Normalize(saved, now)
	}

	// The slice may have shifted while the call was in flight.
	if i = s.index(id); i >= 0 {
		s.goals[i] = next
	}
	if next.Ephemeral() {
		s.saveSeeds()
	}
	return next.Clone(), nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 || !s.goals[i].Ephemeral() {
		if err := s.storage.Delete(ctx, id); err != nil {
			return err
		}
	}
	if i = s.index(id); i >= 0 {
		removed := s.goals[i]
		s.goals = slices.Delete(s.goals, i, i+1)
		if removed.Ephemeral() {
			s.saveSeeds()
		}
	}
	return nil
}

// loadSeeds returns the user's held seeds when an overlay has them, rolled
// over in memory, and fresh demo goals otherwise.
func (s *Store) loadSeeds(now time.Time) []types.Goal {
	if s.overlay == nil {
		return SeedGoals(now)
	}
	held, ok := s.overlay.Get(s.session.User.ID)
	if !ok {
		return SeedGoals(now)
	}
	for i, seed := range held {
		held[i], _ = Rollover(Normalize(seed, now), now)
	}
	return held
}

func (s *Store) saveSeeds() {
	if s.overlay == nil {
		return
	}
	var seeds []types.Goal
	for _, g := range s.goals {
		if g.Ephemeral() {
			seeds = append(seeds, g)
		}
	}
	s.overlay.Put(s.session.User.ID, seeds)
}

func (s *Store) ToggleSubtask(ctx context.Context, goalID, subtaskID string) (types.Goal, error) {
	goal, found, err := s.lookup(goalID)
	if !found {
		return types.Goal{}, err
	}
	update, ok := ToggleSubtask(goal, subtaskID)
	if !ok {
		return goal, nil
	}
	return s.UpdateGoal(ctx, goalID, update)
}

// AddSubtask appends an open subtask. Blank text is ignored.
func (s *Store) AddSubtask(ctx context.Context, goalID, text string) (types.Goal, error) {
	goal, found, err := s.lookup(goalID)
	if !found {
		return types.Goal{}, err
	}
	update, ok := AppendSubtask(goal, s.newID(), text)
	if !ok {
		return goal, nil
	}
	return s.UpdateGoal(ctx, goalID, update)
}

// AddJournalEntry checks in on today's date and updates the streak.
func (s *Store) AddJournalEntry(ctx context.Context, goalID string, input types.JournalInput) (types.Goal, error) {
	goal, found, err := s.lookup(goalID)
	if !found {
		return types.Goal{}, err
	}

	today := DateString(s.clock.Now())
	meta := AddJournalEntry(*goal.Meta, types.JournalEntry{
		ID:    s.newID(),
		Note:  strings.TrimSpace(input.Note),
		Media: input.Media,
	}, today)

	return s.UpdateGoal(ctx, goalID, types.GoalUpdate{Meta: &types.MetaPatch{
		Journal:            &meta.Journal,
		StreakCount:        &meta.StreakCount,
		FreezeTokens:       &meta.FreezeTokens,
		ConsistencyHistory: &meta.ConsistencyHistory,
		LastCheckinDate:    &meta.LastCheckinDate,
	}})
}

// SetWeeklyStatus is a manual override: the bucket is stamped to the current
// week so rollover leaves the goal alone until the next boundary.
func (s *Store) SetWeeklyStatus(ctx context.Context, goalID string, status types.WeeklyStatus) (types.Goal, error) {
	if !status.Valid() {
		return types.Goal{}, types.ValidationError("Unknown weekly status: " + string(status))
	}
	bucket := WeekBucket(s.clock.Now())
	return s.UpdateGoal(ctx, goalID, types.GoalUpdate{Meta: &types.MetaPatch{
		WeeklyStatus: &status,
		WeeklyBucket: &bucket,
	}})
}

// SetProgress is the quick-progress slider: completion follows progress.
func (s *Store) SetProgress(ctx context.Context, goalID string, progress int) (types.Goal, error) {
	progress = clampProgress(progress)
	completed := progress >= 100
	return s.UpdateGoal(ctx, goalID, types.GoalUpdate{Progress: &progress, Completed: &completed})
}

// ToggleComplete completes a goal at 100% or reopens it below 100%.
func (s *Store) ToggleComplete(ctx context.Context, goalID string) (types.Goal, error) {
	goal, found, err := s.lookup(goalID)
	if !found {
		return types.Goal{}, err
	}
	completed := !goal.Completed
	progress := 100
	if !completed {
		progress = min(goal.Progress, 99)
	}
	return s.UpdateGoal(ctx, goalID, types.GoalUpdate{Progress: &progress, Completed: &completed})
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.goals, func(g types.Goal) bool { return g.ID == id })
}

func (s *Store) lookup(id string) (types.Goal, bool, error) {
	if i := s.index(id); i >= 0 {
		return s.goals[i].Clone(), true, nil
	}
	return types.Goal{}, false, s.storage.MissingGoal(id)
}

func applyUpdate(g types.Goal, update types.GoalUpdate, now time.Time) (types.Goal, error) {
	out := g.Clone()
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return types.Goal{}, types.ValidationError("Title is required")
		}
		out.Title = title
	}
	if update.Description != nil {
		out.Description = *update.Description
	}
	if update.Category != nil {
		out.Category = *update.Category
	}
	if update.Progress != nil {
		out.Progress = *update.Progress
	}
	if update.DueDate != nil {
		out.DueDate = strings.TrimSpace(*update.DueDate)
	}
	if update.Completed != nil {
		out.Completed = *update.Completed
	}
	switch {
	case update.RemoveAttachment:
		out.Attachment = nil
	case update.Attachment != nil:
		att := *update.Attachment
		out.Attachment = &att
	}
	if update.Meta != nil {
		meta := DefaultMeta(WeekBucket(now))
		if out.Meta != nil {
			meta = *out.Meta
		}
		meta = update.Meta.Apply(meta)
		out.Meta = &meta
	}
	return Normalize(out, now), nil
}
