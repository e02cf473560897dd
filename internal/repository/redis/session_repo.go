package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"contact-page-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "contact:session:"

type sessionStore interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	SetXX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
}

type sessionRepo struct {
	client sessionStore
	ttl    time.Duration
}

// NewSessionRepository stores sessions as JSON documents that expire after
// ttl without a Save.
func NewSessionRepository(client *goredis.Client, ttl time.Duration) domain.SessionRepository {
	return &sessionRepo{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.FormSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	created, err := r.client.SetNX(ctx, sessionKey(session.ID), payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	if !created {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.FormSession, error) {
	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.FormSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save overwrites an existing session and refreshes its TTL. A session that
// expired in the meantime is not resurrected.
func (r *sessionRepo) Save(ctx context.Context, session *domain.FormSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	updated, err := r.client.SetXX(ctx, sessionKey(session.ID), payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	if !updated {
		return domain.ErrSessionNotFound
	}
	return nil
}
