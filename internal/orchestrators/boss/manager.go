package boss

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
)

// Definition is a registered boss blueprint. Phases is called once per
// spawn so phase hooks can close over the new encounter.
type Definition struct {
	Stats  entities.BossStats
	Phases func(e *Encounter) []*Phase
}

// DeathHandler is notified after an encounter dies and its actor has
// been despawned
type DeathHandler func(ctx context.Context, e *Encounter)

// Config holds the dependencies for the boss manager
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

// Manager owns every live encounter. Damage and ticks arrive on the
// scheduler goroutine; Snapshot serves concurrent readers.
type Manager struct {
	spawner engine.EntitySpawner

	mu          sync.RWMutex
	definitions map[string]Definition
	encounters  map[entities.ActorHandle]*Encounter
	onDeath     DeathHandler
}

// NewManager creates a boss manager with the provided dependencies
func NewManager(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Manager{
		spawner:     cfg.Spawner,
		definitions: make(map[string]Definition),
		encounters:  make(map[entities.ActorHandle]*Encounter),
	}, nil
}

// SetDeathHandler installs the callback invoked when an encounter dies.
// Set it before the first spawn.
func (m *Manager) SetDeathHandler(h DeathHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDeath = h
}

// Register adds a boss definition under a name
func (m *Manager) Register(name string, def Definition) error {
	if name == "" {
		return errors.InvalidArgument("boss definition name is required")
	}
	if def.Phases == nil {
		return errors.InvalidArgumentf("boss definition %s has no phase builder", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.definitions[name]; exists {
		return errors.Newf(errors.CodeAlreadyExists, "boss definition %s already registered", name)
	}
	m.definitions[name] = def
	return nil
}

// Spawn creates a boss from a registered definition, pushes its stats to
// the host engine, and starts the first phase
func (m *Manager) Spawn(ctx context.Context, name string, location entities.Location) (*Encounter, error) {
	m.mu.RLock()
	def, ok := m.definitions[name]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("boss definition %s not registered", name)
	}

	handle, err := m.spawner.Spawn(ctx, def.Stats.Kind, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to spawn boss %s", name)
	}

	if err := m.spawner.ApplyStats(ctx, handle, def.Stats.ActorStats()); err != nil {
		if derr := m.spawner.Despawn(ctx, handle); derr != nil {
			slog.Error("failed to despawn boss after stat apply failure",
				"handle", handle,
				"error", derr,
			)
		}
		return nil, errors.Wrapf(err, "failed to apply stats to boss %s", name)
	}

	enc := newEncounter(handle, location, def.Stats)
	enc.phases = def.Phases(enc)
	enc.Start()

	m.mu.Lock()
	m.encounters[handle] = enc
	m.mu.Unlock()

	slog.Info("boss spawned",
		"boss", def.Stats.Name,
		"handle", handle,
		"arena", location.Arena,
		"phases", len(enc.phases),
	)
	return enc, nil
}

// HandleParticipantDamage routes a participant hit to the encounter
// behind the handle. Returns true when the handle is a live boss, so the
// scheduler knows not to treat the target as a regular actor.
func (m *Manager) HandleParticipantDamage(ctx context.Context, handle entities.ActorHandle, participantID string, amount float64) bool {
	m.mu.RLock()
	enc, ok := m.encounters[handle]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	died := false
	if err := m.withRecovery(enc, func() {
		died = enc.ApplyParticipantDamage(participantID, amount)
	}); err != nil {
		slog.Error("boss damage hook panicked",
			"boss", enc.Stats.Name,
			"handle", handle,
			"error", err,
		)
		return true
	}

	if died {
		m.finish(ctx, enc)
	}
	return true
}

// HandleSourceDamage routes non-participant damage to the encounter
// behind the handle
func (m *Manager) HandleSourceDamage(ctx context.Context, handle entities.ActorHandle, source entities.ActorHandle, amount float64) bool {
	m.mu.RLock()
	enc, ok := m.encounters[handle]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	if err := m.withRecovery(enc, func() {
		enc.ApplyDamage(source, amount)
	}); err != nil {
		slog.Error("boss damage hook panicked",
			"boss", enc.Stats.Name,
			"handle", handle,
			"error", err,
		)
	}
	return true
}

// TickAll ticks every live encounter. A panic in one encounter's hooks
// is logged and does not stop the others.
func (m *Manager) TickAll(ctx context.Context) {
	m.mu.RLock()
	live := make([]*Encounter, 0, len(m.encounters))
	for _, enc := range m.encounters {
		live = append(live, enc)
	}
	m.mu.RUnlock()

	for _, enc := range live {
		if err := m.withRecovery(enc, enc.Tick); err != nil {
			slog.Error("boss tick hook panicked",
				"boss", enc.Stats.Name,
				"handle", enc.Handle,
				"error", err,
			)
		}
	}
}

// Summary is a read-only view of one encounter
type Summary struct {
	Handle     entities.ActorHandle
	Arena      entities.ArenaHandle
	Name       string
	Health     float64
	MaxHealth  float64
	PhaseIndex int
	PhaseName  string
	Dead       bool
}

// Snapshot returns summaries of every tracked encounter
func (m *Manager) Snapshot() []Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.encounters))
	for _, enc := range m.encounters {
		s := Summary{
			Handle:     enc.Handle,
			Arena:      enc.Location.Arena,
			Name:       enc.Stats.Name,
			Health:     enc.health,
			MaxHealth:  enc.Stats.MaxHealth,
			PhaseIndex: enc.idx,
			Dead:       enc.dead,
		}
		if p := enc.CurrentPhase(); p != nil {
			s.PhaseName = p.Name
		}
		out = append(out, s)
	}
	return out
}

// CountForArena returns how many live encounters belong to an arena
func (m *Manager) CountForArena(arena entities.ArenaHandle) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, enc := range m.encounters {
		if enc.Location.Arena == arena && !enc.dead {
			n++
		}
	}
	return n
}

// RemoveAllForArena despawns and drops every encounter in an arena.
// Used on session teardown; no death notifications fire.
func (m *Manager) RemoveAllForArena(ctx context.Context, arena entities.ArenaHandle) {
	m.mu.Lock()
	var doomed []*Encounter
	for handle, enc := range m.encounters {
		if enc.Location.Arena == arena {
			doomed = append(doomed, enc)
			delete(m.encounters, handle)
		}
	}
	m.mu.Unlock()

	for _, enc := range doomed {
		if err := m.spawner.Despawn(ctx, enc.Handle); err != nil {
			slog.Warn("failed to despawn boss during arena teardown",
				"handle", enc.Handle,
				"arena", arena,
				"error", err,
			)
		}
	}
}

// finish despawns a dead encounter, drops it, and notifies the death
// handler exactly once
func (m *Manager) finish(ctx context.Context, enc *Encounter) {
	m.mu.Lock()
	if _, tracked := m.encounters[enc.Handle]; !tracked {
		m.mu.Unlock()
		return
	}
	delete(m.encounters, enc.Handle)
	onDeath := m.onDeath
	m.mu.Unlock()

	if err := m.spawner.Despawn(ctx, enc.Handle); err != nil {
		slog.Warn("failed to despawn dead boss",
			"handle", enc.Handle,
			"error", err,
		)
	}

	slog.Info("boss defeated",
		"boss", enc.Stats.Name,
		"handle", enc.Handle,
		"arena", enc.Location.Arena,
	)

	if onDeath != nil {
		onDeath(ctx, enc)
	}
}

func (m *Manager) withRecovery(enc *Encounter, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in phase %d: %v", enc.idx, r)
		}
	}()
	fn()
	return nil
}
