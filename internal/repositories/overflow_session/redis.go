package overflowsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dx3rd-api/internal/redis"
)

const (
	// Key pattern: overflow_session:{id}
	sessionKeyPrefix = "overflow_session:"

	// DefaultTTL applies when CreateInput.TTL is zero
	DefaultTTL = 15 * time.Minute

	// Error messages
	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for selection sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	session := &Session{
		ID:        input.ID,
		ActorID:   input.ActorID,
		State:     input.State,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, sessionKeyPrefix+input.ID, sessionJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.AlreadyExistsf("session %s already exists", input.ID)
	}

	return &CreateOutput{
		Session: session,
	}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := sessionKeyPrefix + input.ID

	sessionJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("selection session %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Redis expiry and the clock can disagree; the clock wins
	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("selection session %s has expired", input.ID)
	}

	return &GetOutput{
		Session: &session,
	}, nil
}

// Update replaces an existing session, keeping the remaining TTL
func (r *redisRepository) Update(ctx context.Context, session *Session) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	if now.After(session.ExpiresAt) {
		return errors.InvalidArgument(errSessionExpired)
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	updated, err := r.client.SetXX(ctx, sessionKeyPrefix+session.ID, sessionJSON, session.ExpiresAt.Sub(now)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to update session in Redis")
	}
	if !updated {
		return errors.NotFoundf("selection session %s not found", session.ID)
	}

	return nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	deleted, err := r.client.Del(ctx, sessionKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("selection session %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
