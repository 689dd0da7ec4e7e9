package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	redisclient "github.com/fractalshard/game-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	rosterIndexKey     = "character:roster"
	selectedKey        = "character:selected"

	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis character repository.
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.Character.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // roster entries never expire
	pipe.SAdd(ctx, rosterIndexKey, input.Character.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: char}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.Character.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.Character.ID)
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	return &UpdateOutput{Character: input.Character}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, rosterIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roster index")
	}

	characters := make([]*entities.Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.get(ctx, id)
		if err != nil {
			// Self-heal the index when a roster entry is gone.
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character missing, cleaning up roster index",
					"character_id", id)
				r.client.SRem(ctx, rosterIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, char)
	}

	return &ListOutput{Characters: characters}, nil
}

func (r *redisRepository) SetSelected(ctx context.Context, input SetSelectedInput) (*SetSelectedOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	exists, err := r.client.Exists(ctx, characterKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	if err := r.client.Set(ctx, selectedKey, input.ID, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to set selected character")
	}

	return &SetSelectedOutput{}, nil
}

func (r *redisRepository) GetSelected(ctx context.Context, _ GetSelectedInput) (*GetSelectedOutput, error) {
	id, err := r.client.Get(ctx, selectedKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no character selected")
		}
		return nil, errors.Wrap(err, "failed to read selected character")
	}

	char, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetSelectedOutput{Character: char}, nil
}

func (r *redisRepository) get(ctx context.Context, id string) (*entities.Character, error) {
	result, err := r.client.Get(ctx, characterKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", id)
		}
		return nil, errors.Wrap(err, "failed to get character")
	}

	var char entities.Character
	if err := json.Unmarshal([]byte(result), &char); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal character")
	}
	return &char, nil
}
