package account

import (
	"context"
	"net/mail"
	"strings"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/types"

	"github.com/sirupsen/logrus"
)

const MinPasswordLength = 8

// Authenticator is a backend that owns credentials and profiles. Inputs
// are already validated by Service.
type Authenticator interface {
	SignUp(ctx context.Context, user types.SafeUser, password string) (types.Session, error)
	SignIn(ctx context.Context, email, password string) (types.Session, error)
	// CurrentUser resolves a token to the freshest profile the backend has.
	CurrentUser(ctx context.Context, accessToken string) (types.SafeUser, error)
	// ParseToken checks a token without a backend round trip.
	ParseToken(accessToken string) (types.SafeUser, error)
	UpdateProfile(ctx context.Context, session types.Session, user types.SafeUser) (types.SafeUser, error)
	ChangePassword(ctx context.Context, session types.Session, current, next string) error
	SignOut(ctx context.Context, session types.Session) error
}

// Service validates account requests and hands them to an Authenticator.
type Service struct {
	auth   Authenticator
	logger logrus.FieldLogger
}

func NewService(auth Authenticator) *Service {
	return &Service{auth: auth, logger: config.Logger}
}

func (s *Service) SignUp(ctx context.Context, req types.SignupRequest) (types.Session, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if name == "" {
		return types.Session{}, types.ValidationError("Name is required")
	}
	if err := validateEmail(email); err != nil {
		return types.Session{}, err
	}
	if err := validatePassword(req.Password, req.Confirm); err != nil {
		return types.Session{}, err
	}

	user := types.SafeUser{
		Name:       name,
		Email:      email,
		AvatarPosX: types.DefaultAvatarPos,
		AvatarPosY: types.DefaultAvatarPos,
	}
	session, err := s.auth.SignUp(ctx, user, req.Password)
	if err != nil {
		return types.Session{}, err
	}

	s.logger.WithField("user_id", session.User.ID).Info("Account created")
	return session, nil
}

func (s *Service) Login(ctx context.Context, req types.LoginRequest) (types.Session, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return types.Session{}, types.ValidationError("Email and password are required")
	}

	session, err := s.auth.SignIn(ctx, email, req.Password)
	if err != nil {
		s.logger.WithField("email", email).WithError(err).Warn("Login failed")
		return types.Session{}, err
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, session types.Session) error {
	return s.auth.SignOut(ctx, session)
}

func (s *Service) CurrentUser(ctx context.Context, session types.Session) (types.SafeUser, error) {
	return s.auth.CurrentUser(ctx, session.AccessToken)
}

// Authenticate turns a bearer token into a session.
func (s *Service) Authenticate(accessToken string) (types.Session, error) {
	if accessToken == "" {
		return types.Session{}, types.AuthError("Missing access token")
	}
	user, err := s.auth.ParseToken(accessToken)
	if err != nil {
		return types.Session{}, err
	}
	return types.Session{User: user, AccessToken: accessToken}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, session types.Session, update types.ProfileUpdate) (types.SafeUser, error) {
	current, err := s.auth.CurrentUser(ctx, session.AccessToken)
	if err != nil {
		return types.SafeUser{}, err
	}
	return s.auth.UpdateProfile(ctx, session, ApplyProfile(current, update))
}

func (s *Service) ChangePassword(ctx context.Context, session types.Session, req types.PasswordChange) error {
	if req.CurrentPassword == "" {
		return types.ValidationError("Current password is required")
	}
	if err := validatePassword(req.NewPassword, req.Confirm); err != nil {
		return err
	}
	if req.NewPassword == req.CurrentPassword {
		return types.ValidationError("New password must be different")
	}

	if err := s.auth.ChangePassword(ctx, session, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	s.logger.WithField("user_id", session.User.ID).Info("Password changed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return types.ValidationError("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return types.ValidationError("Email is invalid")
	}
	return nil
}

func validatePassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return types.ValidationError("Password must be at least 8 characters")
	}
	if password != confirm {
		return types.ValidationError("Passwords do not match")
	}
	return nil
}
