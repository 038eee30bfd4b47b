package actors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
)

type CoordinatorTestSuite struct {
	suite.Suite
	spawner     *engine.InMemorySpawner
	coordinator *actors.Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.spawner = engine.NewInMemorySpawner()
	s.ctx = context.Background()

	var err error
	s.coordinator, err = actors.NewCoordinator(&actors.Config{Spawner: s.spawner})
	s.Require().NoError(err)
}

func (s *CoordinatorTestSuite) location(arena string) entities.Location {
	return entities.Location{Arena: entities.ArenaHandle(arena), X: 1, Y: 2, Z: 3}
}

func (s *CoordinatorTestSuite) TestConfigValidation() {
	_, err := actors.NewCoordinator(&actors.Config{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *CoordinatorTestSuite) TestSpawnAppliesScaledStats() {
	actor, err := s.coordinator.Spawn(s.ctx, entities.FrozenZombie, s.location("arena_1"), 2.0)
	s.Require().NoError(err)

	s.Equal(60.0, actor.Stats.Health)
	s.Equal(10.0, actor.Stats.Damage)
	s.Equal(4.0, actor.Stats.Armor)
	s.Equal(0.23, actor.Stats.Speed, "speed stays unscaled")
	s.Equal(60.0, actor.Health)

	spawned, ok := s.spawner.Get(actor.Handle)
	s.Require().True(ok)
	s.Equal("zombie", spawned.Kind)
	s.Equal(actor.Stats, spawned.Stats)
}

func (s *CoordinatorTestSuite) TestSpawnRejectsBadMultiplier() {
	_, err := s.coordinator.Spawn(s.ctx, entities.FrozenZombie, s.location("arena_1"), 0)
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *CoordinatorTestSuite) TestDamageAppliesArmor() {
	actor, err := s.coordinator.Spawn(s.ctx, entities.FrozenZombie, s.location("arena_1"), 1.0)
	s.Require().NoError(err)

	// 2 armor reduces damage by 2%
	effective, remaining, err := s.coordinator.Damage(actor.Handle, 10)
	s.Require().NoError(err)
	s.InDelta(9.8, effective, 1e-9)
	s.InDelta(20.2, remaining, 1e-9)
}

func (s *CoordinatorTestSuite) TestDamageUnclampedAboveFullArmor() {
	// Armor over 100 flips the formula negative; preserved on purpose.
	heavy := entities.ActorType{Name: "test_golem", Kind: "golem", BaseHealth: 100, BaseArmor: 120}
	actor, err := s.coordinator.Spawn(s.ctx, heavy, s.location("arena_1"), 1.0)
	s.Require().NoError(err)

	effective, remaining, err := s.coordinator.Damage(actor.Handle, 50)
	s.Require().NoError(err)
	s.InDelta(-10.0, effective, 1e-9)
	s.InDelta(110.0, remaining, 1e-9)
}

func (s *CoordinatorTestSuite) TestDamageUnknownHandle() {
	_, _, err := s.coordinator.Damage("actor_404", 10)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *CoordinatorTestSuite) TestRemove() {
	actor, err := s.coordinator.Spawn(s.ctx, entities.FrostSpider, s.location("arena_1"), 1.0)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.Remove(s.ctx, actor.Handle))
	s.Equal(0, s.spawner.Live())

	err = s.coordinator.Remove(s.ctx, actor.Handle)
	s.True(errors.IsNotFound(err))
}

func (s *CoordinatorTestSuite) TestRemoveAllForArenaIsScoped() {
	_, err := s.coordinator.Spawn(s.ctx, entities.FrozenZombie, s.location("arena_1"), 1.0)
	s.Require().NoError(err)
	_, err = s.coordinator.Spawn(s.ctx, entities.IceSkeleton, s.location("arena_1"), 1.0)
	s.Require().NoError(err)
	other, err := s.coordinator.Spawn(s.ctx, entities.FrostSpider, s.location("arena_2"), 1.0)
	s.Require().NoError(err)

	s.coordinator.RemoveAllForArena(s.ctx, "arena_1")

	s.Equal(0, s.coordinator.CountForArena("arena_1"))
	s.Equal(1, s.coordinator.CountForArena("arena_2"))
	s.Equal(1, s.spawner.Live())

	_, ok := s.coordinator.Get(other.Handle)
	s.True(ok)
}

func (s *CoordinatorTestSuite) TestActiveReturnsCopies() {
	actor, err := s.coordinator.Spawn(s.ctx, entities.FrozenZombie, s.location("arena_1"), 1.0)
	s.Require().NoError(err)

	snapshot := s.coordinator.Active()
	s.Require().Len(snapshot, 1)
	snapshot[0].Health = -999

	fresh, ok := s.coordinator.Get(actor.Handle)
	s.Require().True(ok)
	s.Equal(30.0, fresh.Health)
}
