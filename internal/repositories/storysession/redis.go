package storysession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/fractalshard/game-api/internal/errors"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	redisclient "github.com/fractalshard/game-api/internal/redis"
)

const (
	sessionKeyPrefix = "story_session:"
	defaultTTL       = 24 * time.Hour

	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// RedisConfig holds the configuration for the Redis story session repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if cfg.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed story session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	session := *input.Session
	session.CreatedAt = now
	session.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	key := sessionKeyPrefix + session.ID
	ok, err := r.client.SetNX(ctx, key, data, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store session in Redis")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("session with ID %s already exists", session.ID)
	}

	return &CreateOutput{Session: &session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKeyPrefix + input.SessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("story session not found")
		}
		return nil, errors.Wrap(err, "failed to get session from Redis")
	}

	var session StorySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	// Redis TTL usually beats us here; this covers clock-skewed reads.
	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("story session has expired")
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	if now.After(input.Session.ExpiresAt) {
		return nil, errors.InvalidArgument(errSessionExpired)
	}
	remainingTTL := input.Session.ExpiresAt.Sub(now)

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	key := sessionKeyPrefix + input.Session.ID
	if err := r.client.Set(ctx, key, data, remainingTTL).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update session in Redis")
	}

	return &UpdateOutput{Session: input.Session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	if err := r.client.Del(ctx, sessionKeyPrefix+input.SessionID).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{}, nil
}
