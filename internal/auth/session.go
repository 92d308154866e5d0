// Package auth holds credential hashing and session storage. Sessions are
// explicit objects handed to each call; there is no process-wide
// "current user" state.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightdesk/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Session struct {
	Token    string      `json:"token"`
	UserID   int64       `json:"user_id"`
	Role     domain.Role `json:"role"`
	IssuedAt time.Time   `json:"issued_at"`
}

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a fresh session token for the user and stores it with TTL.
func (s *SessionStore) Create(ctx context.Context, userID int64, role domain.Role) (*Session, error) {
	session := &Session{
		Token:    uuid.NewString(),
		UserID:   userID,
		Role:     role,
		IssuedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, sessionKey(session.Token), payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

// Get resolves a token to its session, or ErrNotFound for unknown/expired
// tokens.
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
