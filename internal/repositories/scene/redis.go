package scene

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	redisclient "github.com/KirkDiggler/dx3rd-api/internal/redis"
)

const (
	sceneKeyPrefix = "scene:"
	activeSceneKey = "scene:active"

	errSceneNil     = "scene cannot be nil"
	errSceneIDEmpty = "scene ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis scene repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed scene repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Scene == nil {
		return nil, errors.InvalidArgument(errSceneNil)
	}
	if input.Scene.ID == "" {
		return nil, errors.InvalidArgument(errSceneIDEmpty)
	}

	data, err := json.Marshal(input.Scene)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal scene")
	}

	if err := r.client.Set(ctx, sceneKeyPrefix+input.Scene.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save scene")
	}

	return &SaveOutput{Scene: input.Scene}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSceneIDEmpty)
	}

	data, err := r.client.Get(ctx, sceneKeyPrefix+input.ID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("scene with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get scene")
	}

	var scene dx3rd.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal scene")
	}

	return &GetOutput{Scene: &scene}, nil
}

func (r *redisRepository) Activate(ctx context.Context, input ActivateInput) (*ActivateOutput, error) {
	getOutput, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, activeSceneKey, input.ID, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to activate scene")
	}

	slog.InfoContext(ctx, "scene activated",
		"scene_id", input.ID,
		"tokens", len(getOutput.Scene.Tokens))

	return &ActivateOutput{Scene: getOutput.Scene}, nil
}

func (r *redisRepository) GetActive(ctx context.Context, _ GetActiveInput) (*GetActiveOutput, error) {
	id, err := r.client.Get(ctx, activeSceneKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no active scene")
		}
		return nil, errors.Wrapf(err, "failed to read active scene")
	}

	getOutput, err := r.Get(ctx, GetInput{ID: id})
	if err != nil {
		return nil, err
	}

	return &GetActiveOutput{Scene: getOutput.Scene}, nil
}
