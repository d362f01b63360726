package account

import (
	"context"
	"fmt"

	"clementus360/goal-tracker/types"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the persistence LocalAuth needs.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (types.User, bool, error)
	FindByID(ctx context.Context, id string) (types.User, bool, error)
	Create(ctx context.Context, user types.User) error
	Save(ctx context.Context, user types.User) error
}

// LocalAuth keeps accounts in the local store with bcrypt password hashes
// and signs its own tokens.
type LocalAuth struct {
	users  UserRepository
	tokens *Tokens
	cost   int
}

func NewLocalAuth(users UserRepository, tokens *Tokens) *LocalAuth {
	return &LocalAuth{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost sets the bcrypt cost used for new password hashes.
func (a *LocalAuth) WithCost(cost int) *LocalAuth {
	a.cost = cost
	return a
}

func (a *LocalAuth) SignUp(ctx context.Context, profile types.SafeUser, password string) (types.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return types.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := types.User{
		ID:           uuid.NewString(),
		Name:         profile.Name,
		Email:        profile.Email,
		PasswordHash: string(hash),
		Sex:          profile.Sex,
		Age:          profile.Age,
		AvatarURL:    profile.AvatarURL,
		AvatarPosX:   profile.AvatarPosX,
		AvatarPosY:   profile.AvatarPosY,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return types.Session{}, err
	}
	return a.session(user.Safe())
}

func (a *LocalAuth) SignIn(ctx context.Context, email, password string) (types.Session, error) {
	user, ok, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return types.Session{}, err
	}
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return types.Session{}, types.AuthError("Invalid credentials")
	}
	return a.session(user.Safe())
}

func (a *LocalAuth) CurrentUser(ctx context.Context, accessToken string) (types.SafeUser, error) {
	claimed, err := a.tokens.Parse(accessToken)
	if err != nil {
		return types.SafeUser{}, err
	}
	user, err := a.find(ctx, claimed.ID)
	if err != nil {
		return types.SafeUser{}, err
	}
	return user.Safe(), nil
}

func (a *LocalAuth) ParseToken(accessToken string) (types.SafeUser, error) {
	return a.tokens.Parse(accessToken)
}

func (a *LocalAuth) UpdateProfile(ctx context.Context, session types.Session, profile types.SafeUser) (types.SafeUser, error) {
	user, err := a.find(ctx, session.User.ID)
	if err != nil {
		return types.SafeUser{}, err
	}

	user.Name = profile.Name
	user.Sex = profile.Sex
	user.Age = profile.Age
	user.AvatarURL = profile.AvatarURL
	user.AvatarPosX = profile.AvatarPosX
	user.AvatarPosY = profile.AvatarPosY

	if err := a.users.Save(ctx, user); err != nil {
		return types.SafeUser{}, err
	}
	return user.Safe(), nil
}

func (a *LocalAuth) ChangePassword(ctx context.Context, session types.Session, current, next string) error {
	user, err := a.find(ctx, session.User.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return types.AuthError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return a.users.Save(ctx, user)
}

// SignOut has nothing to revoke: local tokens are stateless and expire.
func (a *LocalAuth) SignOut(context.Context, types.Session) error {
	return nil
}

func (a *LocalAuth) find(ctx context.Context, id string) (types.User, error) {
	user, ok, err := a.users.FindByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	if !ok {
		return types.User{}, types.AuthError("Account no longer exists")
	}
	return user, nil
}

func (a *LocalAuth) session(user types.SafeUser) (types.Session, error) {
	token, err := a.tokens.Issue(user)
	if err != nil {
		return types.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return types.Session{User: user, AccessToken: token}, nil
}

var _ Authenticator = (*LocalAuth)(nil)
