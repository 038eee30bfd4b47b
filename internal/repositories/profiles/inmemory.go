package profiles

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
)

type inMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewInMemoryRepository creates a profile repository backed by a map.
// Values are stored serialized so callers get the same copy semantics as
// the Redis implementation.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		profiles: make(map[string][]byte),
	}
}

func (r *inMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	r.mu.RLock()
	data, ok := r.profiles[input.ParticipantID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("profile for participant %s not found", input.ParticipantID)
	}

	return decodeProfile(data)
}

func (r *inMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.ID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	data, err := encodeProfile(input.Profile)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.profiles[input.Profile.ID] = data
	r.mu.Unlock()

	return &SaveOutput{}, nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument(errParticipantIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[input.ParticipantID]; !ok {
		return nil, errors.NotFoundf("profile for participant %s not found", input.ParticipantID)
	}
	delete(r.profiles, input.ParticipantID)

	return &DeleteOutput{}, nil
}

func encodeProfile(profile *entities.ParticipantProfile) ([]byte, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal profile")
	}
	return data, nil
}

func decodeProfile(data []byte) (*GetOutput, error) {
	var profile entities.ParticipantProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal profile")
	}
	return &GetOutput{Profile: &profile}, nil
}
