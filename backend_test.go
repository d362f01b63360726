package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackendPersistsAcrossStores(t *testing.T) {
	be, err := newBackend(config.Settings{
		StorePath: filepath.Join(t.TempDir(), "goals.db"),
		JWTSecret: "backend-secret",
		TokenTTL:  time.Hour,
		SeedGoals: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { be.close() })
	ctx := context.Background()

	session, err := be.accounts.SignUp(ctx, types.SignupRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password1", Confirm: "password1",
	})
	require.NoError(t, err)

	store, err := be.openStore(ctx, session)
	require.NoError(t, err)
	seeded := len(store.Goals())
	assert.Positive(t, seeded)

	_, err = store.CreateGoal(ctx, types.GoalInput{Title: "Read 12 books"})
	require.NoError(t, err)

	reopened, err := be.openStore(ctx, session)
	require.NoError(t, err)
	list := reopened.Goals()
	require.Len(t, list, seeded+1)
	assert.Equal(t, "Read 12 books", list[0].Title)
}
