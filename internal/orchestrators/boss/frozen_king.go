package boss

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
)

// FrozenKingDeps are the collaborators the Frozen King's phases use
type FrozenKingDeps struct {
	// Actors spawns and heals the king's minions
	Actors *actors.Coordinator

	// Multiplier scales minion stats; usually the session's difficulty
	// multiplier
	Multiplier float64

	// Rand drives ability chance rolls. Defaults to math/rand.
	Rand func() float64
}

// FrozenKing builds the Frozen King definition: a three phase fight that
// escalates from a passive frost aura to ice storms to a minion swarm.
func FrozenKing(deps FrozenKingDeps) Definition {
	roll := deps.Rand
	if roll == nil {
		roll = rand.Float64
	}
	multiplier := deps.Multiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}

	stats := entities.BossStats{
		Name:        "Frozen King",
		Kind:        "frozen_king",
		MaxHealth:   1000,
		Damage:      15,
		Defense:     10,
		Speed:       0.25,
		AttackSpeed: 1.2,
		Experience:  500,
		Abilities:   []string{"frost_aura", "ice_storm", "summon_minions"},
		Drops: map[string]float64{
			"frozen_crown":  0.10,
			"ice_shard":     0.75,
			"frost_essence": 0.40,
		},
	}

	return Definition{
		Stats: stats,
		Phases: func(e *Encounter) []*Phase {
			// handles of phase three minions, for the periodic heal
			var minions []entities.ActorHandle

			return []*Phase{
				NewPhase("Frozen Throne", "The king tests intruders from his throne", Hooks{
					OnTick: func(e *Encounter, p *Phase) {
						if p.Ticks()%20 == 0 {
							slog.Debug("frost aura pulse",
								"boss", e.Stats.Name,
								"arena", e.Location.Arena,
							)
						}
					},
				}),
				NewPhase("Ice Storm", "Storms batter the arena", Hooks{
					OnStart: func(e *Encounter, p *Phase) {
						slog.Info("boss phase started",
							"boss", e.Stats.Name,
							"phase", p.Name,
							"arena", e.Location.Arena,
						)
					},
					OnTick: func(e *Encounter, p *Phase) {
						if p.Ticks()%40 == 0 {
							slog.Debug("ice storm surge",
								"boss", e.Stats.Name,
								"arena", e.Location.Arena,
							)
						}
					},
					OnParticipantDamage: func(e *Encounter, p *Phase, participantID string, amount float64) {
						if roll() < 0.2 {
							slog.Info("frost nova chills attacker",
								"boss", e.Stats.Name,
								"participant", participantID,
							)
						}
					},
				}),
				NewPhase("Last Stand", "The king raises his frozen guard", Hooks{
					OnStart: func(e *Encounter, p *Phase) {
						slog.Info("boss phase started",
							"boss", e.Stats.Name,
							"phase", p.Name,
							"arena", e.Location.Arena,
						)
						minions = summonGuard(e, deps.Actors, multiplier)
					},
					OnTick: func(e *Encounter, p *Phase) {
						if p.Ticks()%100 != 0 {
							return
						}
						for _, handle := range minions {
							if _, err := deps.Actors.Heal(handle, 5); err != nil {
								continue // minion already killed
							}
						}
					},
				}),
			}
		},
	}
}

// summonGuard spawns the king's zombie guard in a ring around him
func summonGuard(e *Encounter, coordinator *actors.Coordinator, multiplier float64) []entities.ActorHandle {
	if coordinator == nil {
		return nil
	}

	offsets := [][2]float64{{3, 0}, {-3, 0}, {0, 3}, {0, -3}}
	handles := make([]entities.ActorHandle, 0, len(offsets))
	for _, off := range offsets {
		loc := entities.Location{
			Arena: e.Location.Arena,
			X:     e.Location.X + off[0],
			Y:     e.Location.Y,
			Z:     e.Location.Z + off[1],
		}
		actor, err := coordinator.Spawn(context.Background(), entities.FrozenZombie, loc, multiplier)
		if err != nil {
			slog.Warn("failed to summon frozen guard minion",
				"boss", e.Stats.Name,
				"arena", e.Location.Arena,
				"error", err,
			)
			continue
		}
		handles = append(handles, actor.Handle)
	}
	return handles
}
