package account

import (
	"context"
	"testing"
	"time"

	"clementus360/goal-tracker/storage"
	"clementus360/goal-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newLocalService(t *testing.T) (*Service, *storage.LocalUsers) {
	t.Helper()
	users := storage.NewLocalUsers(storage.NewCollections(storage.NewMemoryKV()))
	auth := NewLocalAuth(users, NewTokens("test-secret", time.Hour))
	auth.cost = bcrypt.MinCost
	return NewService(auth), users
}

func signup(name, email, password string) types.SignupRequest {
	return types.SignupRequest{Name: name, Email: email, Password: password, Confirm: password}
}

func TestSignUpValidation(t *testing.T) {
	service, _ := newLocalService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  types.SignupRequest
		want string
	}{
		{"missing name", signup(" ", "ada@example.com", "password1"), "Name is required"},
		{"missing email", signup("Ada", "", "password1"), "Email is required"},
		{"bad email", signup("Ada", "not-an-email", "password1"), "Email is invalid"},
		{"short password", signup("Ada", "ada@example.com", "short"), "Password must be at least 8 characters"},
		{"mismatch", types.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "password1", Confirm: "password2"}, "Passwords do not match"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SignUp(ctx, tc.req)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestSignUpLoginFlow(t *testing.T) {
	service, users := newLocalService(t)
	ctx := context.Background()

	session, err := service.SignUp(ctx, signup("Ada", " Ada@Example.com ", "password1"))
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, float64(types.DefaultAvatarPos), session.User.AvatarPosX)

	stored, ok, err := users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "password1", stored.PasswordHash)

	_, err = service.SignUp(ctx, signup("Other", "ada@example.com", "password2"))
	assert.ErrorIs(t, err, types.ErrAuth)

	_, err = service.Login(ctx, types.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, types.ErrAuth)
	assert.EqualError(t, err, "Invalid credentials")

	_, err = service.Login(ctx, types.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.EqualError(t, err, "Invalid credentials")

	loggedIn, err := service.Login(ctx, types.LoginRequest{Email: "ADA@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, loggedIn.User.ID)

	authed, err := service.Authenticate(loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, authed.User.ID)

	_, err = service.Authenticate("")
	assert.ErrorIs(t, err, types.ErrAuth)

	assert.NoError(t, service.Logout(ctx, authed))
}

func TestProfileAndPassword(t *testing.T) {
	service, _ := newLocalService(t)
	ctx := context.Background()

	session, err := service.SignUp(ctx, signup("Ada", "ada@example.com", "password1"))
	require.NoError(t, err)

	name := "Ada Lovelace"
	age := "36"
	updated, err := service.UpdateProfile(ctx, session, types.ProfileUpdate{Name: &name, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "36", updated.Age)

	me, err := service.CurrentUser(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.Name)

	err = service.ChangePassword(ctx, session, types.PasswordChange{CurrentPassword: "password1", NewPassword: "short", Confirm: "short"})
	assert.ErrorIs(t, err, types.ErrValidation)

	err = service.ChangePassword(ctx, session, types.PasswordChange{CurrentPassword: "password1", NewPassword: "password2", Confirm: "password3"})
	assert.ErrorIs(t, err, types.ErrValidation)

	err = service.ChangePassword(ctx, session, types.PasswordChange{CurrentPassword: "nope-nope", NewPassword: "password2", Confirm: "password2"})
	assert.ErrorIs(t, err, types.ErrAuth)
	assert.EqualError(t, err, "Current password is incorrect")

	require.NoError(t, service.ChangePassword(ctx, session, types.PasswordChange{CurrentPassword: "password1", NewPassword: "password2", Confirm: "password2"}))

	_, err = service.Login(ctx, types.LoginRequest{Email: "ada@example.com", Password: "password1"})
	assert.ErrorIs(t, err, types.ErrAuth)
	_, err = service.Login(ctx, types.LoginRequest{Email: "ada@example.com", Password: "password2"})
	assert.NoError(t, err)
}
