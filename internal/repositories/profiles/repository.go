// Package profiles defines the interface for participant profile persistence
package profiles

//go:generate mockgen -destination=mock/mock_repository.go -package=profilesmock github.com/hypedmc/dungeon-api/internal/repositories/profiles Repository

import (
	"context"

	"github.com/hypedmc/dungeon-api/internal/entities"
)

// Repository defines the interface for participant profile persistence
type Repository interface {
	// Get retrieves a profile by participant ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the profile doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a profile
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a profile by participant ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the profile doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a profile
type GetInput struct {
	ParticipantID string
}

// GetOutput defines the output for getting a profile
type GetOutput struct {
	Profile *entities.ParticipantProfile
}

// SaveInput defines the input for saving a profile
type SaveInput struct {
	Profile *entities.ParticipantProfile
}

// SaveOutput defines the output for saving a profile
type SaveOutput struct {
}

// DeleteInput defines the input for deleting a profile
type DeleteInput struct {
	ParticipantID string
}

// DeleteOutput defines the output for deleting a profile
type DeleteOutput struct {
}
