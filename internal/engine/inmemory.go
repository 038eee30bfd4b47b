package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
)

// InMemoryWorld is a WorldProvider that tracks arena handles without a
// real game world behind them. Used by tests and local runs.
type InMemoryWorld struct {
	mu      sync.Mutex
	counter int
	arenas  map[entities.ArenaHandle]string // arena -> template id
}

// NewInMemoryWorld creates an empty in-memory world provider
func NewInMemoryWorld() *InMemoryWorld {
	return &InMemoryWorld{
		arenas: make(map[entities.ArenaHandle]string),
	}
}

// Allocate implements WorldProvider
func (w *InMemoryWorld) Allocate(ctx context.Context, template *entities.DungeonTemplate) (entities.ArenaHandle, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Canceled("arena allocation canceled")
	}
	if template == nil {
		return "", errors.InvalidArgument("template is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.counter++
	handle := entities.ArenaHandle(fmt.Sprintf("arena_%s_%d", template.ID, w.counter))
	w.arenas[handle] = template.ID
	return handle, nil
}

// Release implements WorldProvider
func (w *InMemoryWorld) Release(ctx context.Context, arena entities.ArenaHandle) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.arenas[arena]; !ok {
		return errors.NotFoundf("arena %s not allocated", arena)
	}
	delete(w.arenas, arena)
	return nil
}

// Live returns the number of currently allocated arenas
func (w *InMemoryWorld) Live() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.arenas)
}

// SpawnedActor is the in-memory record of one spawned actor
type SpawnedActor struct {
	Kind     string
	Location entities.Location
	Stats    entities.ActorStats
}

// InMemorySpawner is an EntitySpawner backed by a map
type InMemorySpawner struct {
	mu      sync.Mutex
	counter int
	actors  map[entities.ActorHandle]*SpawnedActor
}

// NewInMemorySpawner creates an empty in-memory spawner
func NewInMemorySpawner() *InMemorySpawner {
	return &InMemorySpawner{
		actors: make(map[entities.ActorHandle]*SpawnedActor),
	}
}

// Spawn implements EntitySpawner
func (s *InMemorySpawner) Spawn(ctx context.Context, kind string, location entities.Location) (entities.ActorHandle, error) {
	if kind == "" {
		return "", errors.InvalidArgument("entity kind is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	handle := entities.ActorHandle(fmt.Sprintf("actor_%d", s.counter))
	s.actors[handle] = &SpawnedActor{Kind: kind, Location: location}
	return handle, nil
}

// ApplyStats implements EntitySpawner
func (s *InMemorySpawner) ApplyStats(ctx context.Context, handle entities.ActorHandle, stats entities.ActorStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, ok := s.actors[handle]
	if !ok {
		return errors.NotFoundf("actor %s not spawned", handle)
	}
	actor.Stats = stats
	return nil
}

// Despawn implements EntitySpawner
func (s *InMemorySpawner) Despawn(ctx context.Context, handle entities.ActorHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actors[handle]; !ok {
		return errors.NotFoundf("actor %s not spawned", handle)
	}
	delete(s.actors, handle)
	return nil
}

// Get returns the in-memory record for a handle
func (s *InMemorySpawner) Get(handle entities.ActorHandle) (*SpawnedActor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, ok := s.actors[handle]
	if !ok {
		return nil, false
	}
	cp := *actor
	return &cp, true
}

// Live returns the number of currently spawned actors
func (s *InMemorySpawner) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actors)
}

// ChanEventSource is a CombatEventSource backed by a buffered channel.
// The host adapter (or a test) publishes into it.
type ChanEventSource struct {
	ch chan CombatEvent
}

// NewChanEventSource creates a source with the given buffer size
func NewChanEventSource(buffer int) *ChanEventSource {
	return &ChanEventSource{ch: make(chan CombatEvent, buffer)}
}

// Events implements CombatEventSource
func (s *ChanEventSource) Events() <-chan CombatEvent {
	return s.ch
}

// Publish enqueues an event, dropping it if the buffer is full so a slow
// consumer never blocks the host engine's combat thread.
func (s *ChanEventSource) Publish(event CombatEvent) bool {
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}
