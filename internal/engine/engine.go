// Package engine defines the contracts the dungeon orchestrator consumes
// from the host game engine: arena provisioning, actor spawning, and the
// combat event feed. The host binds real implementations at startup; the
// in-memory versions here back tests and local runs.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/hypedmc/dungeon-api/internal/engine WorldProvider,EntitySpawner

import (
	"context"

	"github.com/hypedmc/dungeon-api/internal/entities"
)

// WorldProvider allocates and destroys isolated arenas. Allocation may
// block for non-trivial time; callers run it off the tick loop.
type WorldProvider interface {
	// Allocate provisions a fresh arena for one session
	Allocate(ctx context.Context, template *entities.DungeonTemplate) (entities.ArenaHandle, error)

	// Release destroys an arena. An arena is released exactly once.
	Release(ctx context.Context, arena entities.ArenaHandle) error
}

// EntitySpawner manages actor lifecycle inside arenas
type EntitySpawner interface {
	// Spawn creates an actor of the given engine kind at a location
	Spawn(ctx context.Context, kind string, location entities.Location) (entities.ActorHandle, error)

	// ApplyStats pushes effective stats onto a spawned actor
	ApplyStats(ctx context.Context, handle entities.ActorHandle, stats entities.ActorStats) error

	// Despawn removes an actor from the world
	Despawn(ctx context.Context, handle entities.ActorHandle) error
}

// CombatEvent is a damage event delivered by the host engine
type CombatEvent struct {
	Kind   CombatEventKind
	Target entities.ActorHandle

	// ParticipantID is the attacker for KindDamageByParticipant. For
	// KindDamageBySource with an empty Target it is the victim.
	ParticipantID string

	// Source is set for KindDamageBySource when the attacker is another
	// actor; zero when the damage is environmental.
	Source entities.ActorHandle

	Amount float64
}

// CombatEventKind discriminates combat events
type CombatEventKind string

// Combat event kinds
const (
	KindDamageByParticipant CombatEventKind = "DAMAGE_BY_PARTICIPANT"
	KindDamageBySource      CombatEventKind = "DAMAGE_BY_SOURCE"
)

// CombatEventSource delivers the host engine's combat events. Events
// arrive on arbitrary goroutines; the tick scheduler serializes them
// before any session or encounter state is touched.
type CombatEventSource interface {
	Events() <-chan CombatEvent
}
