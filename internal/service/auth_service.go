package service

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"hourcount/internal/auth"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

// AuthService resolves Google sign-ins against registered users and
// manages their Redis-backed sessions. It never self-registers an
// unknown account.
type AuthService interface {
	LoginURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (sessionID string, user *model.User, err error)
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions *auth.SessionStore
	oauth    *oauth2.Config
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionStore, oauth *oauth2.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		oauth:    oauth,
	}
}

// LoginURL returns the Google consent URL for the given state nonce.
func (s *authService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// LoginWithGoogle exchanges the callback code, matches the account
// email against an existing user, and opens a session for them.
func (s *authService) LoginWithGoogle(ctx context.Context, code string) (string, *model.User, error) {
	email, err := auth.FetchEmail(ctx, s.oauth, code)
	if err != nil {
		return "", nil, fmt.Errorf("google sign-in: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.ErrUnknownAccount
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("open session: %w", err)
	}
	return sessionID, user, nil
}

// CurrentUser resolves a session cookie to the authenticated user.
func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	userID, err := s.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		// The user may have been pruned since the session was opened.
		return nil, apperrors.ErrNotAuthenticated
	}
	return user, nil
}

// Logout destroys the session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}
