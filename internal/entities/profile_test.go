package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/entities"
)

type ProfileTestSuite struct {
	suite.Suite
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileTestSuite))
}

func (s *ProfileTestSuite) TestAddExperienceLevelsUp() {
	profile := entities.NewProfile("alice")
	s.Equal(1, profile.Level)

	// Level 2 requires 100*4 + 50*2 = 500 total experience
	s.False(profile.AddExperience(499))
	s.Equal(1, profile.Level)

	s.True(profile.AddExperience(1))
	s.Equal(2, profile.Level)
}

func (s *ProfileTestSuite) TestRecordCompletionKeepsBestTime() {
	profile := entities.NewProfile("alice")

	profile.RecordCompletion("frostkeep", 120_000)
	profile.RecordCompletion("frostkeep", 90_000)
	profile.RecordCompletion("frostkeep", 150_000)

	s.Equal(3, profile.CompletionCount("frostkeep"))

	best, ok := profile.BestTime("frostkeep")
	s.Require().True(ok)
	s.Equal(int64(90_000), best)

	_, ok = profile.BestTime("lost-temple")
	s.False(ok)
}

func (s *ProfileTestSuite) TestAchievements() {
	profile := entities.NewProfile("alice")

	s.True(profile.UnlockAchievement("first_blood"))
	s.False(profile.UnlockAchievement("first_blood"))
	s.True(profile.HasAchievement("first_blood"))
	s.False(profile.HasAchievement("speed_runner"))
}

func (s *ProfileTestSuite) TestCloneIsDeep() {
	profile := entities.NewProfile("alice")
	profile.RecordCompletion("frostkeep", 90_000)
	profile.UnlockAchievement("first_blood")

	cp := profile.Clone()
	cp.RecordCompletion("frostkeep", 10_000)
	cp.UnlockAchievement("speed_runner")

	s.Equal(1, profile.CompletionCount("frostkeep"))
	best, _ := profile.BestTime("frostkeep")
	s.Equal(int64(90_000), best)
	s.False(profile.HasAchievement("speed_runner"))
}

func (s *ProfileTestSuite) TestStats() {
	var stats entities.ParticipantStats

	stats.RecordKill(false)
	stats.RecordKill(false)
	stats.RecordKill(true)
	stats.RecordDeath()

	stats.RecordDamageDealt(40)
	stats.RecordDamageDealt(110)
	stats.RecordDamageTaken(25)
	stats.RecordRunTime(9015 * time.Second)

	s.Equal(3.0, stats.KDRatio())
	s.Equal(50.0, stats.AverageDamagePerKill())
	s.Equal(110.0, stats.HighestDamageHit)
	s.Equal("2h 30m 15s", stats.FormatTotalTime())
}

func (s *ProfileTestSuite) TestKDRatioWithoutDeaths() {
	var stats entities.ParticipantStats
	stats.RecordKill(false)
	s.Equal(0.0, stats.KDRatio())
}
