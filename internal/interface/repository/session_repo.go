package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"

	redisV8 "github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

// MemorySessionRepository keeps search sessions in process memory
type MemorySessionRepository struct {
	cache *cache.Cache
}

// NewMemorySessionRepository creates an in-memory session store with the given TTL
func NewMemorySessionRepository(ttl time.Duration) repository.SessionRepository {
	return &MemorySessionRepository{
		cache: cache.New(ttl, ttl*2),
	}
}

// Load returns a copy of the stored session
func (r *MemorySessionRepository) Load(ctx context.Context, id string) (*entity.SearchSession, error) {
	value, found := r.cache.Get(id)
	if !found {
		return nil, repository.ErrNotFound
	}
	session := value.(entity.SearchSession)
	return &session, nil
}

// Save stores a copy of the session and refreshes its TTL
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.SearchSession) error {
	session.UpdatedAt = time.Now()
	r.cache.SetDefault(session.ID, *session)
	return nil
}

// RedisSessionRepository stores search sessions as JSON blobs in Redis
type RedisSessionRepository struct {
	client *redisV8.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a Redis-backed session store
func NewRedisSessionRepository(client *redisV8.Client, ttl time.Duration) repository.SessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "airtrip:session:" + id
}

// Load reads and decodes a session
func (r *RedisSessionRepository) Load(ctx context.Context, id string) (*entity.SearchSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redisV8.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return decodeSession(data)
}

// Save encodes a session and refreshes its TTL
func (r *RedisSessionRepository) Save(ctx context.Context, session *entity.SearchSession) error {
	session.UpdatedAt = time.Now()
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func encodeSession(session *entity.SearchSession) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*entity.SearchSession, error) {
	var session entity.SearchSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}
