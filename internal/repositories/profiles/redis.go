package profiles

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	redisclient "github.com/hypedmc/dungeon-api/internal/redis"
)

const (
	profileKeyPrefix = "profile:"

	// Error messages
	errProfileNil         = "profile cannot be nil"
	errParticipantIDEmpty = "participant ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed profile repository.
// Profiles persist without TTL; they are the participant's permanent
// progression record.
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	key := profileKeyPrefix + input.ParticipantID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("profile for participant %s not found", input.ParticipantID)
		}
		return nil, errors.Wrapf(err, "failed to get profile")
	}

	var profile entities.ParticipantProfile
	if err := json.Unmarshal([]byte(result), &profile); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal profile")
	}

	return &GetOutput{Profile: &profile}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.ID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	data, err := json.Marshal(input.Profile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal profile")
	}

	key := profileKeyPrefix + input.Profile.ID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save profile")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	key := profileKeyPrefix + input.ParticipantID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete profile")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("profile for participant %s not found", input.ParticipantID)
	}

	return &DeleteOutput{}, nil
}
