package storage

import (
	"context"
	"strings"

	"clementus360/goal-tracker/types"
)

// LocalUsers is the users collection for local-only accounts.
type LocalUsers struct {
	collections *Collections
}

func NewLocalUsers(collections *Collections) *LocalUsers {
	return &LocalUsers{collections: collections}
}

func (u *LocalUsers) FindByEmail(ctx context.Context, email string) (types.User, bool, error) {
	users, err := u.collections.LoadUsers(ctx)
	if err != nil {
		return types.User{}, false, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range users {
		if strings.ToLower(user.Email) == email {
			return user, true, nil
		}
	}
	return types.User{}, false, nil
}

func (u *LocalUsers) FindByID(ctx context.Context, id string) (types.User, bool, error) {
	users, err := u.collections.LoadUsers(ctx)
	if err != nil {
		return types.User{}, false, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, true, nil
		}
	}
	return types.User{}, false, nil
}

// Create appends the user unless the email is already taken.
func (u *LocalUsers) Create(ctx context.Context, user types.User) error {
	return u.collections.MutateUsers(ctx, func(users []types.User) ([]types.User, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Email, user.Email) {
				return nil, types.AuthError("Email already in use")
			}
		}
		return append(users, user), nil
	})
}

// Save replaces the stored user with the same id.
func (u *LocalUsers) Save(ctx context.Context, user types.User) error {
	return u.collections.MutateUsers(ctx, func(users []types.User) ([]types.User, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = user
				return users, nil
			}
		}
		return nil, types.NotFoundError("User not found")
	})
}
