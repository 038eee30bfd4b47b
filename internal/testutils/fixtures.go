package testutils

import (
	"github.com/hypedmc/dungeon-api/internal/entities"
)

// NewTestTemplate returns a small joinable template. Override fields as
// needed per test.
func NewTestTemplate(id string) *entities.DungeonTemplate {
	return &entities.DungeonTemplate{
		ID:         id,
		Name:       "Test Dungeon",
		Difficulty: entities.DifficultyEasy,
		MinLevel:   1,
		MinPlayers: 1,
		MaxPlayers: 4,
		SpawnPoint: entities.Location{X: 0, Y: 64, Z: 0},
		MobSpawns: []entities.MobSpawn{
			{Type: "frozen_zombie", Location: entities.Location{X: 5, Y: 64, Z: 5}},
			{Type: "ice_skeleton", Location: entities.Location{X: -5, Y: 64, Z: 5}},
		},
	}
}

// NewTestProfile returns a profile at the given level with zero progress
func NewTestProfile(id string, level int) *entities.ParticipantProfile {
	profile := entities.NewProfile(id)
	profile.Level = level
	return profile
}
