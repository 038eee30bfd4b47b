package boss

import (
	"github.com/hypedmc/dungeon-api/internal/entities"
)

// Encounter is one live boss. It mirrors the boss's health itself so
// phase transitions never depend on reading the spawned entity back.
//
// Encounters are mutated only from the scheduler goroutine; concurrent
// readers go through Manager.Snapshot.
type Encounter struct {
	Handle   entities.ActorHandle
	Location entities.Location
	Stats    entities.BossStats

	phases []*Phase
	idx    int
	health float64
	dead   bool
}

func newEncounter(handle entities.ActorHandle, location entities.Location, stats entities.BossStats) *Encounter {
	return &Encounter{
		Handle:   handle,
		Location: location,
		Stats:    stats,
		idx:      -1,
		health:   stats.MaxHealth,
	}
}

// Health returns the encounter's mirrored health. It can go negative on
// the killing blow.
func (e *Encounter) Health() float64 {
	return e.health
}

// Dead reports whether the final phase has ended
func (e *Encounter) Dead() bool {
	return e.dead
}

// PhaseIndex returns the zero-based index of the active phase, or -1
// before Start
func (e *Encounter) PhaseIndex() int {
	return e.idx
}

// CurrentPhase returns the active phase, or nil before Start
func (e *Encounter) CurrentPhase() *Phase {
	if e.idx < 0 || e.idx >= len(e.phases) {
		return nil
	}
	return e.phases[e.idx]
}

// Start activates the first phase. A boss defined with no phases is dead
// on arrival.
func (e *Encounter) Start() {
	if e.idx >= 0 || e.dead {
		return
	}
	if len(e.phases) == 0 {
		e.markDead()
		return
	}
	e.idx = 0
	e.phases[0].start(e)
}

// ApplyParticipantDamage applies a hit attributed to a participant,
// runs the active phase's damage hook, then checks the phase threshold.
// The boss advances out of phase i once health drops to or below
// maxHealth * (1 - (i+1)/n). Running out of phases kills the boss.
// Returns true when this hit killed the boss.
func (e *Encounter) ApplyParticipantDamage(participantID string, amount float64) bool {
	if e.dead {
		return false
	}
	e.health -= amount
	if p := e.CurrentPhase(); p != nil {
		p.participantDamage(e, participantID, amount)
	}
	e.checkThreshold()
	return e.dead
}

// ApplyDamage applies a hit from a non-participant source (environment,
// another actor). It never advances phases; only participant damage
// drives the state machine.
func (e *Encounter) ApplyDamage(source entities.ActorHandle, amount float64) {
	if e.dead {
		return
	}
	e.health -= amount
	if p := e.CurrentPhase(); p != nil {
		p.anyDamage(e, source, amount)
	}
}

// Tick advances the active phase's tick counter and runs its tick hook
func (e *Encounter) Tick() {
	if e.dead {
		return
	}
	if p := e.CurrentPhase(); p != nil {
		p.tick(e)
	}
}

// checkThreshold advances phases while health sits at or below the
// current phase's exit threshold. A single hit large enough to span
// several thresholds walks through each phase in order so every start
// and end hook still fires.
func (e *Encounter) checkThreshold() {
	n := len(e.phases)
	if n == 0 || e.idx < 0 {
		return
	}
	for !e.dead {
		threshold := e.Stats.MaxHealth * (1 - float64(e.idx+1)/float64(n))
		if e.health > threshold {
			return
		}
		if !e.nextPhase() {
			e.markDead()
		}
	}
}

// nextPhase ends the current phase and starts the next one. Returns
// false when there is no next phase.
func (e *Encounter) nextPhase() bool {
	e.phases[e.idx].end(e)
	if e.idx+1 >= len(e.phases) {
		return false
	}
	e.idx++
	e.phases[e.idx].start(e)
	return true
}

func (e *Encounter) markDead() {
	if e.dead {
		return
	}
	e.dead = true
	if p := e.CurrentPhase(); p != nil {
		p.end(e)
	}
}
