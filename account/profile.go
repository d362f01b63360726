package account

import (
	"fmt"
	"strconv"
	"strings"

	"clementus360/goal-tracker/types"
)

// UserFromMetadata builds the public profile from an id, an email and the
// free-form metadata attached to the account. Missing fields get defaults:
// the name falls back to the email's local part and then to "User", and
// avatar offsets default to the centre.
func UserFromMetadata(id, email string, meta map[string]any) types.SafeUser {
	user := types.SafeUser{
		ID:         id,
		Email:      email,
		Name:       stringField(meta, "name"),
		Sex:        stringField(meta, "sex"),
		Age:        stringField(meta, "age"),
		AvatarURL:  stringField(meta, "avatarUrl"),
		AvatarPosX: numberField(meta, "avatarPosX", types.DefaultAvatarPos),
		AvatarPosY: numberField(meta, "avatarPosY", types.DefaultAvatarPos),
	}
	if user.Name == "" {
		user.Name = fallbackName(email)
	}
	return user
}

// Metadata is the inverse of UserFromMetadata.
func Metadata(user types.SafeUser) map[string]any {
	return map[string]any{
		"name":       user.Name,
		"sex":        user.Sex,
		"age":        user.Age,
		"avatarUrl":  user.AvatarURL,
		"avatarPosX": user.AvatarPosX,
		"avatarPosY": user.AvatarPosY,
	}
}

// ApplyProfile merges a partial profile update into user.
func ApplyProfile(user types.SafeUser, update types.ProfileUpdate) types.SafeUser {
	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Sex != nil {
		user.Sex = *update.Sex
	}
	if update.Age != nil {
		user.Age = strings.TrimSpace(*update.Age)
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.AvatarPosX != nil {
		user.AvatarPosX = clampPercent(*update.AvatarPosX)
	}
	if update.AvatarPosY != nil {
		user.AvatarPosY = clampPercent(*update.AvatarPosY)
	}
	if user.Name == "" {
		user.Name = fallbackName(user.Email)
	}
	return user
}

func fallbackName(email string) string {
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		return local
	}
	return "User"
}

func stringField(meta map[string]any, key string) string {
	switch v := meta[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func numberField(meta map[string]any, key string, fallback float64) float64 {
	switch v := meta[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
