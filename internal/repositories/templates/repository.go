// Package templates defines the interface for dungeon template storage.
// Templates load from configuration once and are immutable afterwards;
// Reload swaps the whole catalog atomically.
package templates

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/hypedmc/dungeon-api/internal/repositories/templates Repository

import (
	"context"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/rules/requirements"
)

// StoredTemplate pairs a template with its requirements parsed once at
// load time, so join-time evaluation never re-parses specs.
type StoredTemplate struct {
	Template     *entities.DungeonTemplate
	Requirements []requirements.Requirement
}

// Repository defines the interface for dungeon template storage
type Repository interface {
	// Get retrieves a template by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the template doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns all templates in stable ID order
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Reload re-reads the backing source and atomically replaces the
	// catalog. On failure the previous catalog stays live.
	Reload(ctx context.Context, input ReloadInput) (*ReloadOutput, error)
}

// GetInput defines the input for getting a template
type GetInput struct {
	TemplateID string
}

// GetOutput defines the output for getting a template
type GetOutput struct {
	Template *StoredTemplate
}

// ListInput defines the input for listing templates
type ListInput struct {
}

// ListOutput defines the output for listing templates
type ListOutput struct {
	Templates []*StoredTemplate
}

// ReloadInput defines the input for reloading the catalog
type ReloadInput struct {
}

// ReloadOutput defines the output for reloading the catalog
type ReloadOutput struct {
	Count int
}
