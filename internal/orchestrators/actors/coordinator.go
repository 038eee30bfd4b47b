// Package actors implements the spawn coordinator for difficulty-scaled
// hostile actors. It owns the handle registry between spawn and removal;
// the host engine owns everything physical about the actor.
package actors

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
)

// Actor is one tracked hostile actor
type Actor struct {
	Handle entities.ActorHandle
	Arena  entities.ArenaHandle
	Type   entities.ActorType
	Stats  entities.ActorStats

	// Health is the coordinator's mirror of remaining health, driven by
	// Damage calls.
	Health float64
}

// Config holds the dependencies for the spawn coordinator
type Config struct {
	Spawner engine.EntitySpawner
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Spawner == nil {
		vb.RequiredField("Spawner")
	}

	return vb.Build()
}

// Coordinator spawns, tracks, and removes hostile actors
type Coordinator struct {
	spawner engine.EntitySpawner

	mu     sync.RWMutex
	actors map[entities.ActorHandle]*Actor
}

// NewCoordinator creates a spawn coordinator with the provided dependencies
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Coordinator{
		spawner: cfg.Spawner,
		actors:  make(map[entities.ActorHandle]*Actor),
	}, nil
}

// Spawn creates a difficulty-scaled actor at the location and registers
// its handle.
func (c *Coordinator) Spawn(ctx context.Context, typ entities.ActorType, location entities.Location, multiplier float64) (*Actor, error) {
	if multiplier <= 0 {
		return nil, errors.InvalidArgumentf("difficulty multiplier must be positive, got %v", multiplier)
	}

	stats := typ.BaseStats().Scale(multiplier)

	handle, err := c.spawner.Spawn(ctx, typ.Kind, location)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "spawn failed")
	}

	if err := c.spawner.ApplyStats(ctx, handle, stats); err != nil {
		// Best effort cleanup; the arena is torn down with the session
		// anyway if this fails too.
		_ = c.spawner.Despawn(ctx, handle)
		return nil, errors.Wrap(err, "apply stats failed")
	}

	actor := &Actor{
		Handle: handle,
		Arena:  location.Arena,
		Type:   typ,
		Stats:  stats,
		Health: stats.Health,
	}

	c.mu.Lock()
	c.actors[handle] = actor
	c.mu.Unlock()

	slog.Debug("actor spawned",
		"handle", handle,
		"type", typ.Name,
		"arena", location.Arena,
		"multiplier", multiplier,
	)

	cp := *actor
	return &cp, nil
}

// Damage applies raw damage through the actor's armor and returns the
// effective damage and remaining health. The armor formula is
// raw * (1 - armor/100) with no clamp; armor above 100 turns damage into
// healing, which matches the original behavior.
func (c *Coordinator) Damage(handle entities.ActorHandle, raw float64) (effective, remaining float64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, ok := c.actors[handle]
	if !ok {
		return 0, 0, errors.NotFoundf("actor %s not tracked", handle)
	}

	effective = raw * (1 - actor.Stats.Armor/100)
	actor.Health -= effective
	return effective, actor.Health, nil
}

// Heal restores health to an actor, capped at its scaled maximum, and
// returns the remaining health
func (c *Coordinator) Heal(handle entities.ActorHandle, amount float64) (remaining float64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, ok := c.actors[handle]
	if !ok {
		return 0, errors.NotFoundf("actor %s not tracked", handle)
	}

	actor.Health += amount
	if actor.Health > actor.Stats.Health {
		actor.Health = actor.Stats.Health
	}
	return actor.Health, nil
}

// Get returns a copy of a tracked actor
func (c *Coordinator) Get(handle entities.ActorHandle) (*Actor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	actor, ok := c.actors[handle]
	if !ok {
		return nil, false
	}
	cp := *actor
	return &cp, true
}

// Remove despawns an actor and drops it from the registry
func (c *Coordinator) Remove(ctx context.Context, handle entities.ActorHandle) error {
	c.mu.Lock()
	_, ok := c.actors[handle]
	delete(c.actors, handle)
	c.mu.Unlock()

	if !ok {
		return errors.NotFoundf("actor %s not tracked", handle)
	}

	if err := c.spawner.Despawn(ctx, handle); err != nil {
		return errors.Wrap(err, "despawn failed")
	}
	return nil
}

// RemoveAllForArena despawns every actor in an arena. Used on session
// teardown; despawn errors are logged rather than aborting the sweep.
func (c *Coordinator) RemoveAllForArena(ctx context.Context, arena entities.ArenaHandle) {
	c.mu.Lock()
	var handles []entities.ActorHandle
	for handle, actor := range c.actors {
		if actor.Arena == arena {
			handles = append(handles, handle)
			delete(c.actors, handle)
		}
	}
	c.mu.Unlock()

	for _, handle := range handles {
		if err := c.spawner.Despawn(ctx, handle); err != nil {
			slog.Error("despawn failed during arena teardown",
				"handle", handle,
				"arena", arena,
				"error", err,
			)
		}
	}
}

// CountForArena returns how many actors are alive in an arena
func (c *Coordinator) CountForArena(arena entities.ArenaHandle) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, actor := range c.actors {
		if actor.Arena == arena {
			n++
		}
	}
	return n
}

// Active returns a snapshot of all tracked actors
func (c *Coordinator) Active() []*Actor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Actor, 0, len(c.actors))
	for _, actor := range c.actors {
		cp := *actor
		out = append(out, &cp)
	}
	return out
}
