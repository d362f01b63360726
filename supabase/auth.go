package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"clementus360/goal-tracker/account"
	"clementus360/goal-tracker/types"

	gotypes "github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

// RemoteAuth delegates accounts to Supabase Auth. Profile fields live in
// user_metadata.
type RemoteAuth struct {
	client    *supabase.Client
	jwtSecret string
}

func NewRemoteAuth(client *supabase.Client, jwtSecret string) *RemoteAuth {
	return &RemoteAuth{client: client, jwtSecret: jwtSecret}
}

// authPayload covers the user and session shapes GoTrue returns from
// signup, token and user endpoints.
type authPayload struct {
	AccessToken  string         `json:"access_token"`
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	User         *authPayload   `json:"user"`
}

func decodeAuthPayload(v any) (authPayload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return authPayload{}, err
	}
	var payload authPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return authPayload{}, err
	}
	// With a session present the user sits under "user"; without one the
	// nested user is all zero values.
	if payload.AccessToken != "" && payload.User != nil {
		payload.ID = payload.User.ID
		payload.Email = payload.User.Email
		payload.UserMetadata = payload.User.UserMetadata
	}
	return payload, nil
}

func (p authPayload) safeUser() types.SafeUser {
	return account.UserFromMetadata(p.ID, p.Email, p.UserMetadata)
}

func (a *RemoteAuth) SignUp(_ context.Context, user types.SafeUser, password string) (types.Session, error) {
	resp, err := a.client.Auth.Signup(gotypes.SignupRequest{
		Email:    user.Email,
		Password: password,
		Data:     account.Metadata(user),
	})
	if err != nil {
		return types.Session{}, classifyAuthError(err)
	}

	payload, err := decodeAuthPayload(resp)
	if err != nil {
		return types.Session{}, types.RemoteError(err)
	}
	if payload.AccessToken == "" {
		return types.Session{}, types.AuthError("Check your email to confirm the account, then log in")
	}
	return types.Session{User: payload.safeUser(), AccessToken: payload.AccessToken}, nil
}

func (a *RemoteAuth) SignIn(_ context.Context, email, password string) (types.Session, error) {
	resp, err := a.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return types.Session{}, classifyAuthError(err)
	}

	payload, err := decodeAuthPayload(resp)
	if err != nil {
		return types.Session{}, types.RemoteError(err)
	}
	return types.Session{User: payload.safeUser(), AccessToken: payload.AccessToken}, nil
}

func (a *RemoteAuth) CurrentUser(_ context.Context, accessToken string) (types.SafeUser, error) {
	resp, err := a.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return types.SafeUser{}, classifyAuthError(err)
	}

	payload, err := decodeAuthPayload(resp)
	if err != nil {
		return types.SafeUser{}, types.RemoteError(err)
	}
	return payload.safeUser(), nil
}

func (a *RemoteAuth) ParseToken(accessToken string) (types.SafeUser, error) {
	return ParseAccessToken(accessToken, a.jwtSecret)
}

func (a *RemoteAuth) UpdateProfile(_ context.Context, session types.Session, user types.SafeUser) (types.SafeUser, error) {
	resp, err := a.client.Auth.WithToken(session.AccessToken).UpdateUser(gotypes.UpdateUserRequest{
		Data: account.Metadata(user),
	})
	if err != nil {
		return types.SafeUser{}, classifyAuthError(err)
	}

	payload, err := decodeAuthPayload(resp)
	if err != nil {
		return types.SafeUser{}, types.RemoteError(err)
	}
	return payload.safeUser(), nil
}

// ChangePassword re-authenticates with the current password first, since
// GoTrue accepts a password update from any valid session.
func (a *RemoteAuth) ChangePassword(_ context.Context, session types.Session, current, next string) error {
	if _, err := a.client.Auth.SignInWithEmailPassword(session.User.Email, current); err != nil {
		if types.KindOf(classifyAuthError(err)) == types.KindAuth {
			return types.AuthError("Current password is incorrect")
		}
		return types.RemoteError(err)
	}

	_, err := a.client.Auth.WithToken(session.AccessToken).UpdateUser(gotypes.UpdateUserRequest{
		Password: &next,
	})
	if err != nil {
		return classifyAuthError(err)
	}
	return nil
}

func (a *RemoteAuth) SignOut(_ context.Context, session types.Session) error {
	if err := a.client.Auth.WithToken(session.AccessToken).Logout(); err != nil {
		return types.RemoteError(fmt.Errorf("failed to sign out: %w", err))
	}
	return nil
}

var _ account.Authenticator = (*RemoteAuth)(nil)

// classifyAuthError separates credential problems from backend failures.
// GoTrue reports both as plain errors carrying the response body.
func classifyAuthError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already been registered"):
		return types.AuthError("Email already in use")
	case strings.Contains(msg, "invalid login credentials"), strings.Contains(msg, "invalid_grant"):
		return types.AuthError("Invalid credentials")
	case strings.Contains(msg, "status code 401"), strings.Contains(msg, "status code 403"),
		strings.Contains(msg, "jwt"):
		return types.AuthError("Session expired, please log in again")
	default:
		return types.RemoteError(err)
	}
}
