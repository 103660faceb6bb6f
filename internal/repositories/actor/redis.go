package actor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"

	redis "github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
	redisclient "github.com/KirkDiggler/dx3rd-api/internal/redis"
)

const (
	actorKeyPrefix = "actor:"
	actorIndexKey  = "actor:index"

	// Error messages
	errActorNil     = "actor cannot be nil"
	errActorIDEmpty = "actor ID cannot be empty"
	errItemIDEmpty  = "item ID cannot be empty"
	errPatchEmpty   = "patch cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis actor repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed actor repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Actor == nil {
		return nil, errors.InvalidArgument(errActorNil)
	}
	if input.Actor.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	key := actorKeyPrefix + input.Actor.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("actor with ID %s already exists", input.Actor.ID)
	}

	data, err := json.Marshal(input.Actor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal actor")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, actorIndexKey, input.Actor.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create actor")
	}

	return &CreateOutput{Actor: input.Actor}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	result, err := r.client.Get(ctx, actorKeyPrefix+input.ID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get actor")
	}

	actor, err := decodeActor(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Actor: actor}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, actorIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read actor index")
	}
	sort.Strings(ids)

	actors := make([]*dx3rd.Actor, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "actor not found, cleaning up index",
					"actor_id", id)
				r.client.SRem(ctx, actorIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get actor %s", id)
		}
		actors = append(actors, getOutput.Actor)
	}

	slog.DebugContext(ctx, "listed actors",
		"count", len(actors))

	return &ListOutput{Actors: actors}, nil
}

func (r *redisRepository) UpdateActor(ctx context.Context, input UpdateActorInput) (*UpdateActorOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if len(input.Patch) == 0 {
		return nil, errors.InvalidArgument(errPatchEmpty)
	}

	actor, err := r.patch(ctx, input.ActorID, func(doc []byte) ([]byte, error) {
		return fieldpatch.Apply(doc, "", input.Patch)
	})
	if err != nil {
		return nil, err
	}

	return &UpdateActorOutput{Actor: actor}, nil
}

func (r *redisRepository) UpdateItem(ctx context.Context, input UpdateItemInput) (*UpdateItemOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}
	if len(input.Patch) == 0 {
		return nil, errors.InvalidArgument(errPatchEmpty)
	}

	actor, err := r.patch(ctx, input.ActorID, func(doc []byte) ([]byte, error) {
		idx := itemIndex(doc, input.ItemID)
		if idx < 0 {
			return nil, errors.NotFoundf("item %s not found on actor %s", input.ItemID, input.ActorID)
		}
		return fieldpatch.Apply(doc, "items."+strconv.Itoa(idx), input.Patch)
	})
	if err != nil {
		return nil, err
	}

	return &UpdateItemOutput{Item: actor.FindItem(input.ItemID)}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, actorKeyPrefix+input.ID)
	pipe.SRem(ctx, actorIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete actor")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// patch runs a read-modify-write of one actor document under WATCH so a
// concurrent writer makes this call fail instead of being overwritten. A
// patched document that no longer decodes as an actor is never written.
func (r *redisRepository) patch(ctx context.Context, actorID string, mutate func([]byte) ([]byte, error)) (*dx3rd.Actor, error) {
	key := actorKeyPrefix + actorID

	var updated *dx3rd.Actor
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		doc, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("actor with ID %s not found", actorID)
			}
			return errors.Wrapf(err, "failed to get actor")
		}

		next, err := mutate(doc)
		if err != nil {
			return err
		}

		actor, err := decodeActor(next)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "patch leaves actor invalid")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = actor
		return nil
	}, key)
	if err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("actor %s changed during update", actorID)
		}
		var customErr *errors.Error
		if errors.As(err, &customErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to patch actor %s", actorID)
	}

	return updated, nil
}

func itemIndex(doc []byte, itemID string) int {
	idx, i := -1, 0
	gjson.GetBytes(doc, "items").ForEach(func(_, value gjson.Result) bool {
		if value.Get("id").String() == itemID {
			idx = i
			return false
		}
		i++
		return true
	})
	return idx
}

func decodeActor(doc []byte) (*dx3rd.Actor, error) {
	var actor dx3rd.Actor
	if err := json.Unmarshal(doc, &actor); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal actor")
	}
	return &actor, nil
}
