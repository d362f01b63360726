package types

const DefaultAvatarPos = 50

type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"passwordHash,omitempty"` // local mode only
	Sex          string  `json:"sex"`
	Age          string  `json:"age"`
	AvatarURL    string  `json:"avatarUrl"`
	AvatarPosX   float64 `json:"avatarPosX"`
	AvatarPosY   float64 `json:"avatarPosY"`
}

// SafeUser is what leaves the account layer: never the password hash.
type SafeUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Sex        string  `json:"sex"`
	Age        string  `json:"age"`
	AvatarURL  string  `json:"avatarUrl"`
	AvatarPosX float64 `json:"avatarPosX"`
	AvatarPosY float64 `json:"avatarPosY"`
}

func (u User) Safe() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Sex:        u.Sex,
		Age:        u.Age,
		AvatarURL:  u.AvatarURL,
		AvatarPosX: u.AvatarPosX,
		AvatarPosY: u.AvatarPosY,
	}
}

// Session ties a signed-in user to the token that proves it. Stores and
// services receive it explicitly instead of reading a global.
type Session struct {
	User        SafeUser `json:"user"`
	AccessToken string   `json:"access_token"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Sex        *string  `json:"sex,omitempty"`
	Age        *string  `json:"age,omitempty"`
	AvatarURL  *string  `json:"avatarUrl,omitempty"`
	AvatarPosX *float64 `json:"avatarPosX,omitempty"`
	AvatarPosY *float64 `json:"avatarPosY,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Confirm         string `json:"confirm"`
}

type SessionResponse struct {
	Success      bool     `json:"success"`
	Session      *Session `json:"session,omitempty"`
	ErrorMessage string   `json:"error,omitempty"`
}

type UserResponse struct {
	Success      bool      `json:"success"`
	User         *SafeUser `json:"user,omitempty"`
	ErrorMessage string    `json:"error,omitempty"`
}
