// Package service orchestrates the application's use cases on top of the
// repositories, the credential store, and the session manager.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/session"
	"inkwell/internal/validation"
)

// User-visible flash messages, kept verbatim so the rendering layer shows
// the same wording the forms always have.
const (
	MsgAlreadyRegistered = "You've already signed up with that email, log in instead!"
	MsgUnknownEmail      = "That email does not exist, please try again."
	MsgWrongPassword     = "Password incorrect, please try again."
)

// LoginPath is where a duplicate registration is redirected.
const LoginPath = "/login"

// AuthService implements registration, login, and logout.
type AuthService struct {
	users    repository.UserRepository
	sessions *session.Manager
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Credentials carries the login form fields.
type Credentials struct {
	Email    string
	Password string
}

// NewAuthService returns an AuthService over the given repository and
// session manager.
func NewAuthService(users repository.UserRepository, sessions *session.Manager) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register validates the input, creates the account, and logs the new user
// in. A duplicate email is a conflict that redirects to the login form
// rather than a hard failure. The first account ever created becomes the
// site admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, "", models.NewValidationError("Email, password, and name are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewConflictError(MsgAlreadyRegistered, LoginPath)
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: digest,
		Name:     in.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two registrations raced on the same email; the unique index let
		// only one through. Same outcome as the lookup above.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			return nil, "", models.NewConflictError(MsgAlreadyRegistered, LoginPath)
		}
		return nil, "", err
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Login verifies the credentials and issues a session. The two failure
// messages are deliberately distinct, matching the login form's behavior.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewAuthenticationError(MsgUnknownEmail)
	}

	if !auth.VerifyPassword(creds.Password, user.Password) {
		return nil, "", models.NewAuthenticationError(MsgWrongPassword)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Logout revokes the session behind the token. Logging out while not logged
// in is a no-op success.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}
