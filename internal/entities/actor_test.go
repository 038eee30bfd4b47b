package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/entities"
)

type ActorTestSuite struct {
	suite.Suite
}

func TestActorSuite(t *testing.T) {
	suite.Run(t, new(ActorTestSuite))
}

func (s *ActorTestSuite) TestScaleLeavesSpeedAlone() {
	base := entities.ActorStats{Health: 30, Damage: 5, Speed: 0.23, Armor: 2}

	for _, multiplier := range []float64{0.5, 1.0, 1.5, 3.0} {
		scaled := base.Scale(multiplier)
		s.Equal(base.Health*multiplier, scaled.Health)
		s.Equal(base.Damage*multiplier, scaled.Damage)
		s.Equal(base.Armor*multiplier, scaled.Armor)
		s.Equal(base.Speed, scaled.Speed, "speed must not scale with difficulty")
	}
}

func (s *ActorTestSuite) TestCatalogLookup() {
	typ, ok := entities.ActorTypeByName("frozen_zombie")
	s.Require().True(ok)
	s.Equal("zombie", typ.Kind)
	s.Equal(entities.FrozenZombie.BaseStats(), typ.BaseStats())

	_, ok = entities.ActorTypeByName("unknown_mob")
	s.False(ok)
}

func (s *ActorTestSuite) TestDifficultyMultipliers() {
	s.Equal(1.0, entities.DifficultyEasy.Multiplier())
	s.Equal(1.5, entities.DifficultyMedium.Multiplier())
	s.Equal(2.0, entities.DifficultyHard.Multiplier())
	s.Equal(3.0, entities.DifficultyElite.Multiplier())

	_, err := entities.ParseDifficulty("nightmare")
	s.Error(err)

	d, err := entities.ParseDifficulty("hard")
	s.Require().NoError(err)
	s.Equal(entities.DifficultyHard, d)
}

func (s *ActorTestSuite) TestBossStatsProjection() {
	boss := entities.BossStats{
		Name:      "Frozen King",
		Kind:      "zombie",
		MaxHealth: 1000,
		Damage:    15,
		Defense:   10,
		Speed:     0.3,
	}

	stats := boss.ActorStats()
	s.Equal(1000.0, stats.Health)
	s.Equal(15.0, stats.Damage)
	s.Equal(10.0, stats.Armor)
	s.Equal(0.3, stats.Speed)
}
