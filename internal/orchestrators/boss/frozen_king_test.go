package boss_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
)

type FrozenKingTestSuite struct {
	suite.Suite
	spawner     *engine.InMemorySpawner
	coordinator *actors.Coordinator
	manager     *boss.Manager
	ctx         context.Context
}

func TestFrozenKingSuite(t *testing.T) {
	suite.Run(t, new(FrozenKingTestSuite))
}

func (s *FrozenKingTestSuite) SetupTest() {
	s.spawner = engine.NewInMemorySpawner()
	s.ctx = context.Background()

	var err error
	s.coordinator, err = actors.NewCoordinator(&actors.Config{Spawner: s.spawner})
	s.Require().NoError(err)
	s.manager, err = boss.NewManager(&boss.Config{Spawner: s.spawner})
	s.Require().NoError(err)

	def := boss.FrozenKing(boss.FrozenKingDeps{
		Actors:     s.coordinator,
		Multiplier: 1.5,
		Rand:       func() float64 { return 0.5 },
	})
	s.Require().NoError(s.manager.Register("frozen_king", def))
}

func (s *FrozenKingTestSuite) spawnKing() *boss.Encounter {
	enc, err := s.manager.Spawn(s.ctx, "frozen_king", entities.Location{Arena: "arena_1", X: 0, Y: 64, Z: 0})
	s.Require().NoError(err)
	return enc
}

func (s *FrozenKingTestSuite) TestThreePhaseFight() {
	enc := s.spawnKing()

	s.Equal(1000.0, enc.Health())
	s.Equal("Frozen Throne", enc.CurrentPhase().Name)

	enc.ApplyParticipantDamage("alice", 340)
	s.Equal("Ice Storm", enc.CurrentPhase().Name)

	enc.ApplyParticipantDamage("alice", 340)
	s.Equal("Last Stand", enc.CurrentPhase().Name)

	died := enc.ApplyParticipantDamage("alice", 340)
	s.True(died)
}

func (s *FrozenKingTestSuite) TestLastStandSummonsScaledGuard() {
	enc := s.spawnKing()

	enc.ApplyParticipantDamage("alice", 700)
	s.Equal("Last Stand", enc.CurrentPhase().Name)

	guard := s.coordinator.Active()
	s.Require().Len(guard, 4)
	for _, minion := range guard {
		s.Equal(entities.ArenaHandle("arena_1"), minion.Arena)
		s.Equal("frozen_zombie", minion.Type.Name)
		s.Equal(45.0, minion.Stats.Health, "base 30 scaled by 1.5")
	}
}

func (s *FrozenKingTestSuite) TestGuardHealPulse() {
	enc := s.spawnKing()
	enc.ApplyParticipantDamage("alice", 700)

	guard := s.coordinator.Active()
	s.Require().Len(guard, 4)
	wounded := guard[0].Handle

	// armor 3 after scaling, so 10 raw lands as 9.7
	_, remaining, err := s.coordinator.Damage(wounded, 10)
	s.Require().NoError(err)
	s.InDelta(35.3, remaining, 0.001)

	for i := 0; i < 100; i++ {
		s.manager.TickAll(s.ctx)
	}

	minion, ok := s.coordinator.Get(wounded)
	s.Require().True(ok)
	s.InDelta(40.3, minion.Health, 0.001)
}
