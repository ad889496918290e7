package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hourcount/internal/cache"
	apperrors "hourcount/internal/errors"
)

const (
	sessionKeyPrefix = "session:"

	// SessionCookieName is the cookie carrying the opaque session id.
	SessionCookieName = "hc_session"
	// SessionTTL is how long a sign-in stays valid.
	SessionTTL = 7 * 24 * time.Hour
)

type sessionRecord struct {
	UserID uint `json:"user_id"`
}

// SessionStore keeps opaque session ids in Redis, mapped to user ids.
// The cookie only ever carries the random id; identity is resolved
// server-side on every request.
type SessionStore struct {
	cache *cache.Client
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create opens a session for the user and returns its id.
func (s *SessionStore) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.New().String()
	payload, err := json.Marshal(sessionRecord{UserID: userID})
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+id, payload, SessionTTL); err != nil {
		return "", err
	}
	return id, nil
}

// Resolve returns the user id behind a session id, or
// ErrNotAuthenticated when the session is missing or expired.
func (s *SessionStore) Resolve(ctx context.Context, id string) (uint, error) {
	if id == "" {
		return 0, apperrors.ErrNotAuthenticated
	}
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil || data == nil {
		return 0, apperrors.ErrNotAuthenticated
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.UserID == 0 {
		return 0, apperrors.ErrNotAuthenticated
	}
	return rec.UserID, nil
}

// Destroy removes a session.
func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}
