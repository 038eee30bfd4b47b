// Package boss implements the boss encounter state machine: an ordered
// list of scripted phases advanced by damage-driven health thresholds,
// and the manager that ticks every live encounter.
package boss

import (
	"github.com/hypedmc/dungeon-api/internal/entities"
)

// Hooks are the behavior of one phase. Phases are assembled as data plus
// function references at boss construction time; there is no phase
// subclassing. Any hook may be nil.
type Hooks struct {
	OnStart             func(e *Encounter, p *Phase)
	OnEnd               func(e *Encounter, p *Phase)
	OnTick              func(e *Encounter, p *Phase)
	OnParticipantDamage func(e *Encounter, p *Phase, participantID string, amount float64)
	OnAnyDamage         func(e *Encounter, p *Phase, source entities.ActorHandle, amount float64)
}

// Phase is one behavioral stage of an encounter
type Phase struct {
	Name        string
	Description string

	hooks  Hooks
	active bool
	ticks  int
}

// NewPhase creates a phase from its hook table
func NewPhase(name, description string, hooks Hooks) *Phase {
	return &Phase{
		Name:        name,
		Description: description,
		hooks:       hooks,
	}
}

// Active reports whether the phase is currently running
func (p *Phase) Active() bool {
	return p.active
}

// Ticks returns how many ticks the phase has been active. Hooks use this
// to gate periodic effects ("every 20 ticks do X").
func (p *Phase) Ticks() int {
	return p.ticks
}

func (p *Phase) start(e *Encounter) {
	if p.active {
		return
	}
	p.active = true
	p.ticks = 0
	if p.hooks.OnStart != nil {
		p.hooks.OnStart(e, p)
	}
}

func (p *Phase) end(e *Encounter) {
	if !p.active {
		return
	}
	p.active = false
	if p.hooks.OnEnd != nil {
		p.hooks.OnEnd(e, p)
	}
}

func (p *Phase) tick(e *Encounter) {
	if !p.active {
		return
	}
	p.ticks++
	if p.hooks.OnTick != nil {
		p.hooks.OnTick(e, p)
	}
}

func (p *Phase) participantDamage(e *Encounter, participantID string, amount float64) {
	if p.hooks.OnParticipantDamage != nil {
		p.hooks.OnParticipantDamage(e, p, participantID, amount)
	}
}

func (p *Phase) anyDamage(e *Encounter, source entities.ActorHandle, amount float64) {
	if p.hooks.OnAnyDamage != nil {
		p.hooks.OnAnyDamage(e, p, source, amount)
	}
}
