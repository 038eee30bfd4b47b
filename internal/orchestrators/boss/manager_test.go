package boss_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
)

type ManagerTestSuite struct {
	suite.Suite
	spawner *engine.InMemorySpawner
	manager *boss.Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.spawner = engine.NewInMemorySpawner()
	s.ctx = context.Background()

	var err error
	s.manager, err = boss.NewManager(&boss.Config{Spawner: s.spawner})
	s.Require().NoError(err)
}

func (s *ManagerTestSuite) simpleDefinition(maxHealth float64) boss.Definition {
	return boss.Definition{
		Stats: entities.BossStats{Name: "Test Boss", Kind: "test_boss", MaxHealth: maxHealth},
		Phases: func(e *boss.Encounter) []*boss.Phase {
			return []*boss.Phase{boss.NewPhase("only", "", boss.Hooks{})}
		},
	}
}

func (s *ManagerTestSuite) location(arena string) entities.Location {
	return entities.Location{Arena: entities.ArenaHandle(arena), X: 0, Y: 64, Z: 0}
}

func (s *ManagerTestSuite) TestConfigValidation() {
	_, err := boss.NewManager(&boss.Config{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *ManagerTestSuite) TestRegisterRejectsDuplicates() {
	s.Require().NoError(s.manager.Register("dup", s.simpleDefinition(100)))

	err := s.manager.Register("dup", s.simpleDefinition(100))
	s.Require().Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *ManagerTestSuite) TestSpawnUnknownDefinition() {
	_, err := s.manager.Spawn(s.ctx, "nope", s.location("arena_1"))
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ManagerTestSuite) TestSpawnPushesBossStats() {
	def := s.simpleDefinition(500)
	def.Stats.Damage = 15
	def.Stats.Defense = 10
	s.Require().NoError(s.manager.Register("statted", def))

	enc, err := s.manager.Spawn(s.ctx, "statted", s.location("arena_1"))
	s.Require().NoError(err)

	spawned, ok := s.spawner.Get(enc.Handle)
	s.Require().True(ok)
	s.Equal("test_boss", spawned.Kind)
	s.Equal(500.0, spawned.Stats.Health)
	s.Equal(15.0, spawned.Stats.Damage)
	s.Equal(10.0, spawned.Stats.Armor)
}

func (s *ManagerTestSuite) TestDamageRoutingUnknownHandle() {
	s.False(s.manager.HandleParticipantDamage(s.ctx, "actor_404", "alice", 10))
	s.False(s.manager.HandleSourceDamage(s.ctx, "actor_404", "actor_405", 10))
}

func (s *ManagerTestSuite) TestDeathDespawnsAndNotifiesOnce() {
	s.Require().NoError(s.manager.Register("victim", s.simpleDefinition(100)))
	enc, err := s.manager.Spawn(s.ctx, "victim", s.location("arena_1"))
	s.Require().NoError(err)

	deaths := 0
	s.manager.SetDeathHandler(func(ctx context.Context, e *boss.Encounter) {
		deaths++
		s.Equal(enc.Handle, e.Handle)
	})

	s.True(s.manager.HandleParticipantDamage(s.ctx, enc.Handle, "alice", 150))
	s.Equal(1, deaths)
	s.Equal(0, s.spawner.Live())

	// dead encounter is dropped, so a stale event no longer routes here
	s.False(s.manager.HandleParticipantDamage(s.ctx, enc.Handle, "alice", 10))
	s.Equal(1, deaths)
}

func (s *ManagerTestSuite) TestTickAllSurvivesPanickingHook() {
	healthy := 0
	bomb := boss.Definition{
		Stats: entities.BossStats{Name: "Bomb", Kind: "bomb", MaxHealth: 100},
		Phases: func(e *boss.Encounter) []*boss.Phase {
			return []*boss.Phase{boss.NewPhase("only", "", boss.Hooks{
				OnTick: func(e *boss.Encounter, p *boss.Phase) { panic("scripted failure") },
			})}
		},
	}
	calm := boss.Definition{
		Stats: entities.BossStats{Name: "Calm", Kind: "calm", MaxHealth: 100},
		Phases: func(e *boss.Encounter) []*boss.Phase {
			return []*boss.Phase{boss.NewPhase("only", "", boss.Hooks{
				OnTick: func(e *boss.Encounter, p *boss.Phase) { healthy++ },
			})}
		},
	}
	s.Require().NoError(s.manager.Register("bomb", bomb))
	s.Require().NoError(s.manager.Register("calm", calm))

	_, err := s.manager.Spawn(s.ctx, "bomb", s.location("arena_1"))
	s.Require().NoError(err)
	_, err = s.manager.Spawn(s.ctx, "calm", s.location("arena_1"))
	s.Require().NoError(err)

	s.manager.TickAll(s.ctx)
	s.manager.TickAll(s.ctx)
	s.Equal(2, healthy)
}

func (s *ManagerTestSuite) TestDamagePanicDoesNotPropagate() {
	bomb := boss.Definition{
		Stats: entities.BossStats{Name: "Bomb", Kind: "bomb", MaxHealth: 100},
		Phases: func(e *boss.Encounter) []*boss.Phase {
			return []*boss.Phase{boss.NewPhase("only", "", boss.Hooks{
				OnParticipantDamage: func(e *boss.Encounter, p *boss.Phase, participantID string, amount float64) {
					panic("scripted failure")
				},
			})}
		},
	}
	s.Require().NoError(s.manager.Register("bomb", bomb))
	enc, err := s.manager.Spawn(s.ctx, "bomb", s.location("arena_1"))
	s.Require().NoError(err)

	s.NotPanics(func() {
		s.True(s.manager.HandleParticipantDamage(s.ctx, enc.Handle, "alice", 10))
	})
}

func (s *ManagerTestSuite) TestSnapshotAndCount() {
	s.Require().NoError(s.manager.Register("snap", s.simpleDefinition(200)))
	enc, err := s.manager.Spawn(s.ctx, "snap", s.location("arena_1"))
	s.Require().NoError(err)

	s.manager.HandleParticipantDamage(s.ctx, enc.Handle, "alice", 50)

	snaps := s.manager.Snapshot()
	s.Require().Len(snaps, 1)
	s.Equal(enc.Handle, snaps[0].Handle)
	s.Equal(entities.ArenaHandle("arena_1"), snaps[0].Arena)
	s.Equal(150.0, snaps[0].Health)
	s.Equal(200.0, snaps[0].MaxHealth)
	s.Equal("only", snaps[0].PhaseName)
	s.False(snaps[0].Dead)

	s.Equal(1, s.manager.CountForArena("arena_1"))
	s.Equal(0, s.manager.CountForArena("arena_2"))
}

func (s *ManagerTestSuite) TestRemoveAllForArena() {
	s.Require().NoError(s.manager.Register("sweep", s.simpleDefinition(100)))
	_, err := s.manager.Spawn(s.ctx, "sweep", s.location("arena_1"))
	s.Require().NoError(err)
	keeper, err := s.manager.Spawn(s.ctx, "sweep", s.location("arena_2"))
	s.Require().NoError(err)

	notified := false
	s.manager.SetDeathHandler(func(ctx context.Context, e *boss.Encounter) { notified = true })

	s.manager.RemoveAllForArena(s.ctx, "arena_1")

	s.False(notified, "teardown is not a kill")
	s.Equal(0, s.manager.CountForArena("arena_1"))
	s.Equal(1, s.manager.CountForArena("arena_2"))

	_, alive := s.spawner.Get(keeper.Handle)
	s.True(alive)
}
