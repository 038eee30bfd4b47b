// Package scheduler drives the orchestrator's tick loop. One goroutine
// drains the host engine's combat events, routes damage to bosses and
// actors, and advances every session and encounter, so tick-side state
// never sees concurrent mutation.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/session"
)

// maxEventsPerTick bounds how many combat events one tick drains, so a
// flood cannot stall phase ticks and countdowns
const maxEventsPerTick = 1024

// Config holds the dependencies and tuning for the scheduler
type Config struct {
	Events   engine.CombatEventSource
	Bosses   *boss.Manager
	Actors   *actors.Coordinator
	Sessions session.Service

	// Interval is the tick period
	Interval time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Events == nil {
		vb.RequiredField("Events")
	}
	if c.Bosses == nil {
		vb.RequiredField("Bosses")
	}
	if c.Actors == nil {
		vb.RequiredField("Actors")
	}
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Interval <= 0 {
		vb.InvalidField("Interval", "must be positive")
	}

	return vb.Build()
}

// Scheduler serializes combat events and tick advancement
type Scheduler struct {
	events   engine.CombatEventSource
	bosses   *boss.Manager
	actors   *actors.Coordinator
	sessions session.Service
	interval time.Duration
}

// New creates a scheduler with the provided dependencies
func New(cfg *Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Scheduler{
		events:   cfg.Events,
		bosses:   cfg.Bosses,
		actors:   cfg.Actors,
		sessions: cfg.Sessions,
		interval: cfg.Interval,
	}, nil
}

// Run ticks until ctx is canceled
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step runs one tick: drain events, tick encounters, advance sessions
func (s *Scheduler) Step(ctx context.Context) {
	s.drainEvents(ctx)
	s.bosses.TickAll(ctx)
	s.sessions.Tick(ctx)
}

func (s *Scheduler) drainEvents(ctx context.Context) {
	for i := 0; i < maxEventsPerTick; i++ {
		select {
		case event, ok := <-s.events.Events():
			if !ok {
				return
			}
			if err := s.dispatch(ctx, event); err != nil {
				slog.Error("combat event dispatch failed",
					"kind", event.Kind,
					"target", event.Target,
					"error", err,
				)
			}
		default:
			return
		}
	}
}

// dispatch routes one combat event. A panic anywhere downstream is
// contained to this event.
func (s *Scheduler) dispatch(ctx context.Context, event engine.CombatEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch event.Kind {
	case engine.KindDamageByParticipant:
		return s.participantDamage(ctx, event)
	case engine.KindDamageBySource:
		return s.sourceDamage(ctx, event)
	default:
		slog.Warn("unknown combat event kind", "kind", event.Kind)
		return nil
	}
}

func (s *Scheduler) participantDamage(ctx context.Context, event engine.CombatEvent) error {
	// bosses first: a boss handle is never in the actor registry
	if s.bosses.HandleParticipantDamage(ctx, event.Target, event.ParticipantID, event.Amount) {
		_, err := s.sessions.RecordDamage(ctx, &session.RecordDamageInput{
			ParticipantID: event.ParticipantID,
			Amount:        event.Amount,
		})
		return err
	}

	actor, ok := s.actors.Get(event.Target)
	if !ok {
		// stale event for an already-removed actor
		return nil
	}

	effective, remaining, err := s.actors.Damage(event.Target, event.Amount)
	if err != nil {
		return err
	}
	if _, err := s.sessions.RecordDamage(ctx, &session.RecordDamageInput{
		ParticipantID: event.ParticipantID,
		Amount:        effective,
	}); err != nil {
		return err
	}

	if remaining > 0 {
		return nil
	}

	if err := s.actors.Remove(ctx, event.Target); err != nil {
		return err
	}
	_, err = s.sessions.RecordKill(ctx, &session.RecordKillInput{
		Arena:         actor.Arena,
		ParticipantID: event.ParticipantID,
		ActorType:     actor.Type.Name,
	})
	if errors.IsNotFound(err) {
		// the session finished while the event was in flight
		return nil
	}
	return err
}

func (s *Scheduler) sourceDamage(ctx context.Context, event engine.CombatEvent) error {
	// empty target means a participant took the hit
	if event.Target == "" {
		if event.ParticipantID == "" {
			return nil
		}
		_, err := s.sessions.RecordDamage(ctx, &session.RecordDamageInput{
			ParticipantID: event.ParticipantID,
			Amount:        event.Amount,
			Taken:         true,
		})
		return err
	}

	if s.bosses.HandleSourceDamage(ctx, event.Target, event.Source, event.Amount) {
		return nil
	}

	if _, ok := s.actors.Get(event.Target); !ok {
		return nil
	}
	_, remaining, err := s.actors.Damage(event.Target, event.Amount)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		// no participant gets credit for friendly fire
		return s.actors.Remove(ctx, event.Target)
	}
	return nil
}
