package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clementus360/goal-tracker/account"
	"clementus360/goal-tracker/goals"
	"clementus360/goal-tracker/handlers"
	"clementus360/goal-tracker/llm"
	"clementus360/goal-tracker/routes"
	"clementus360/goal-tracker/storage"
	"clementus360/goal-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var wednesday = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

type fakeGenerator struct {
	readyErr error
	text     string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Ready() error { return f.readyErr }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T, generator llm.Client) *testAPI {
	t.Helper()
	return buildTestAPI(t, generator, nil)
}

// buildTestAPI serves the demo goals through seeds when it is non-nil.
func buildTestAPI(t *testing.T, generator llm.Client, seeds *goals.SeedOverlay) *testAPI {
	t.Helper()

	collections := storage.NewCollections(storage.NewMemoryKV())
	clock := goals.FixedClock(wednesday)
	localGoals := storage.NewLocalGoals(collections, clock.Now)
	tokens := account.NewTokens("handler-secret", time.Hour)
	auth := account.NewLocalAuth(storage.NewLocalUsers(collections), tokens).WithCost(bcrypt.MinCost)

	openStore := func(ctx context.Context, session types.Session) (*goals.Store, error) {
		store := goals.NewStore(session, localGoals.ForUser(session.User.ID),
			goals.WithClock(clock), goals.WithSeeds(seeds != nil), goals.WithSeedOverlay(seeds))
		if err := store.Load(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	h := handlers.New(account.NewService(auth), openStore, generator).WithClock(clock).WithSeedOverlay(seeds)
	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, h)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testAPI{t: t, server: server}
}

// do sends body as JSON and decodes the response into out when given.
func (a *testAPI) do(method, path, token string, body, out any) int {
	a.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &payload)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) signup(email string) types.Session {
	a.t.Helper()
	var resp types.SessionResponse
	status := a.do(http.MethodPost, "/auth/signup", "", types.SignupRequest{
		Name:     "Ada",
		Email:    email,
		Password: "password1",
		Confirm:  "password1",
	}, &resp)
	require.Equal(a.t, http.StatusCreated, status)
	require.NotNil(a.t, resp.Session)
	return *resp.Session
}

func TestGoalRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, &fakeGenerator{})

	var resp types.StatusResponse
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/goals", "", nil, &resp))
	assert.False(t, resp.Success)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/goals", "garbage", nil, &resp))
	assert.Equal(t, "Invalid or expired token", resp.ErrorMessage)
}

func TestAuthRoutes(t *testing.T) {
	api := newTestAPI(t, &fakeGenerator{})
	session := api.signup("ada@example.com")

	var status types.StatusResponse
	code := api.do(http.MethodPost, "/auth/signup", "", types.SignupRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password1", Confirm: "password1",
	}, &status)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Email already in use", status.ErrorMessage)

	code = api.do(http.MethodPost, "/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "nope"}, &status)
	assert.Equal(t, http.StatusUnauthorized, code)

	var login types.SessionResponse
	code = api.do(http.MethodPost, "/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "password1"}, &login)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.User.ID, login.Session.User.ID)

	name := "Ada Lovelace"
	var user types.UserResponse
	code = api.do(http.MethodPatch, "/auth/profile", session.AccessToken, types.ProfileUpdate{Name: &name}, &user)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada Lovelace", user.User.Name)

	code = api.do(http.MethodGet, "/auth/me", session.AccessToken, nil, &user)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada Lovelace", user.User.Name)

	code = api.do(http.MethodPost, "/auth/password", session.AccessToken, types.PasswordChange{
		CurrentPassword: "password1", NewPassword: "password2", Confirm: "password2",
	}, &status)
	require.Equal(t, http.StatusOK, code)

	code = api.do(http.MethodPost, "/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "password2"}, &login)
	assert.Equal(t, http.StatusOK, code)

	code = api.do(http.MethodPost, "/auth/logout", session.AccessToken, nil, &status)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Success)
}

func TestGoalLifecycle(t *testing.T) {
	api := newTestAPI(t, &fakeGenerator{})
	token := api.signup("ada@example.com").AccessToken

	var created types.GoalResponse
	code := api.do(http.MethodPost, "/goals/create", token, types.GoalInput{
		Title:    "Run 5k",
		Category: types.CategoryHealth,
		DueDate:  "2025-03-01",
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, created.Goal)
	id := created.Goal.ID
	require.NotEmpty(t, id)
	require.NotNil(t, created.Goal.Meta)
	assert.Equal(t, "2025-03-10", created.Goal.Meta.WeeklyBucket)

	var goal types.GoalResponse
	code = api.do(http.MethodPost, "/goals/subtasks?id="+id, token, types.SubtaskRequest{Text: "Buy shoes"}, &goal)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, goal.Goal.Meta.Subtasks, 1)
	subtaskID := goal.Goal.Meta.Subtasks[0].ID

	code = api.do(http.MethodPost, "/goals/subtasks/toggle?id="+id+"&subtask="+subtaskID, token, nil, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, goal.Goal.Meta.Subtasks[0].Done)
	assert.Equal(t, 100, goal.Goal.Progress)
	assert.True(t, goal.Goal.Completed)

	code = api.do(http.MethodPost, "/goals/journal?id="+id, token, types.JournalInput{Note: "first run"}, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, goal.Goal.Meta.StreakCount)
	assert.Equal(t, "2025-03-12", goal.Goal.Meta.LastCheckinDate)

	code = api.do(http.MethodPatch, "/goals/weekly?id="+id, token, types.WeeklyStatusRequest{Status: types.Blocked}, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, types.Blocked, goal.Goal.Meta.WeeklyStatus)

	code = api.do(http.MethodPatch, "/goals/progress?id="+id, token, types.ProgressRequest{Progress: 40}, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 40, goal.Goal.Progress)
	assert.False(t, goal.Goal.Completed)

	code = api.do(http.MethodPost, "/goals/complete?id="+id, token, nil, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, goal.Goal.Completed)
	assert.Equal(t, 100, goal.Goal.Progress)

	var list types.GetGoalsResponse
	code = api.do(http.MethodGet, "/goals?status=completed", token, nil, &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, list.Total)

	code = api.do(http.MethodGet, "/goal?id="+id, token, nil, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Run 5k", goal.Goal.Title)

	var stats types.StatsResponse
	code = api.do(http.MethodGet, "/goals/stats", token, nil, &stats)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, stats.Stats.Total)
	assert.Equal(t, 1, stats.Stats.Completed)

	var board types.BoardResponse
	code = api.do(http.MethodGet, "/goals/board", token, nil, &board)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, board.Board.Blocked, 1)
	assert.NotEmpty(t, board.CoachTip)

	var deleted types.DeleteGoalResponse
	code = api.do(http.MethodDelete, "/goals/delete?id="+id, token, nil, &deleted)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, deleted.Success)

	code = api.do(http.MethodGet, "/goal?id="+id, token, nil, &goal)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGoalsAreScopedToTheirOwner(t *testing.T) {
	api := newTestAPI(t, &fakeGenerator{})
	ada := api.signup("ada@example.com").AccessToken
	bob := api.signup("bob@example.com").AccessToken

	var created types.GoalResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/goals/create", ada, types.GoalInput{Title: "Read"}, &created))

	var list types.GetGoalsResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/goals", bob, nil, &list))
	assert.Equal(t, 0, list.Total)

	var deleted types.DeleteGoalResponse
	api.do(http.MethodDelete, "/goals/delete?id="+created.Goal.ID, bob, nil, &deleted)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/goals", ada, nil, &list))
	assert.Equal(t, 1, list.Total)
}

func TestGoalValidationErrors(t *testing.T) {
	api := newTestAPI(t, &fakeGenerator{})
	token := api.signup("ada@example.com").AccessToken

	var resp types.StatusResponse
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/goals/create", token, types.GoalInput{Title: "  "}, &resp))
	assert.Equal(t, "Title is required", resp.ErrorMessage)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/goals/progress", token, types.ProgressRequest{Progress: 10}, &resp))
	assert.Equal(t, "Missing goal ID", resp.ErrorMessage)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/goals/subtasks/toggle?id=x", token, nil, &resp))
	assert.Equal(t, "Missing subtask ID", resp.ErrorMessage)
}

func TestGenerateHandler(t *testing.T) {
	cases := []struct {
		name      string
		generator *fakeGenerator
		body      any
		status    int
		want      types.GenerateResponse
	}{
		{
			name:      "missing key",
			generator: &fakeGenerator{readyErr: &llm.ConfigError{Message: "OPENAI_API_KEY is missing"}},
			body:      types.GenerateRequest{Prompt: "hi"},
			status:    http.StatusInternalServerError,
			want:      types.GenerateResponse{Error: "OPENAI_API_KEY is missing"},
		},
		{
			name:      "blank prompt",
			generator: &fakeGenerator{},
			body:      types.GenerateRequest{Prompt: "   "},
			status:    http.StatusBadRequest,
			want:      types.GenerateResponse{Error: "Prompt is required."},
		},
		{
			name:      "upstream rejection",
			generator: &fakeGenerator{err: &llm.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: "quota exceeded"}},
			body:      types.GenerateRequest{Prompt: "hi"},
			status:    http.StatusTooManyRequests,
			want:      types.GenerateResponse{Error: "quota exceeded"},
		},
		{
			name:      "transport failure",
			generator: &fakeGenerator{err: errors.New("request failed: dial tcp")},
			body:      types.GenerateRequest{Prompt: "hi"},
			status:    http.StatusInternalServerError,
			want:      types.GenerateResponse{Error: "request failed: dial tcp"},
		},
		{
			name:      "success",
			generator: &fakeGenerator{text: "Run twice this week."},
			body:      types.GenerateRequest{Prompt: "help"},
			status:    http.StatusOK,
			want:      types.GenerateResponse{Text: "Run twice this week."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(t, tc.generator)

			var resp types.GenerateResponse
			assert.Equal(t, tc.status, api.do(http.MethodPost, "/api/generate", "", tc.body, &resp))
			assert.Equal(t, tc.want, resp)
		})
	}
}

func TestSeedEditsLastUntilLogout(t *testing.T) {
	api := buildTestAPI(t, &fakeGenerator{}, goals.NewSeedOverlay())
	token := api.signup("ada@example.com").AccessToken

	var goal types.GoalResponse
	code := api.do(http.MethodPatch, "/goals/progress?id=seed-read-books", token, types.ProgressRequest{Progress: 60}, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 60, goal.Goal.Progress)

	code = api.do(http.MethodGet, "/goal?id=seed-read-books", token, nil, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 60, goal.Goal.Progress)

	var status types.StatusResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/auth/logout", token, nil, &status))

	code = api.do(http.MethodGet, "/goal?id=seed-read-books", token, nil, &goal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 25, goal.Goal.Progress)
}
