package profiles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/repositories/profiles"
	"github.com/hypedmc/dungeon-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    profiles.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.repo = profiles.NewRedisRepository(client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRoundTrip() {
	profile := testutils.NewTestProfile("player_1", 7)
	profile.Experience = 5400
	profile.Language = "en"
	profile.RecordCompletion("frostkeep", 154000)
	profile.RecordCompletion("frostkeep", 150000)
	profile.UnlockAchievement("first_blood")
	profile.Stats.RecordKill(false)
	profile.Stats.RecordKill(true)
	profile.Stats.RecordDamageDealt(123.5)

	_, err := s.repo.Save(s.ctx, profiles.SaveInput{Profile: profile})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, profiles.GetInput{ParticipantID: "player_1"})
	s.Require().NoError(err)

	got := out.Profile
	s.Equal(7, got.Level)
	s.Equal(int64(5400), got.Experience)
	s.Equal("en", got.Language)
	s.Equal(2, got.CompletionCount("frostkeep"))
	best, ok := got.BestTime("frostkeep")
	s.Require().True(ok)
	s.Equal(int64(150000), best)
	s.True(got.HasAchievement("first_blood"))
	s.Equal(1, got.Stats.MobsKilled)
	s.Equal(1, got.Stats.BossesKilled)
	s.Equal(123.5, got.Stats.TotalDamageDealt)
	s.Equal(123.5, got.Stats.HighestDamageHit)
}

func (s *RedisRepositoryTestSuite) TestGetMissingProfile() {
	_, err := s.repo.Get(s.ctx, profiles.GetInput{ParticipantID: "ghost"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetEmptyID() {
	_, err := s.repo.Get(s.ctx, profiles.GetInput{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestSaveValidation() {
	_, err := s.repo.Save(s.ctx, profiles.SaveInput{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = s.repo.Save(s.ctx, profiles.SaveInput{Profile: testutils.NewTestProfile("", 1)})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestSaveReplacesExisting() {
	profile := testutils.NewTestProfile("player_1", 1)
	_, err := s.repo.Save(s.ctx, profiles.SaveInput{Profile: profile})
	s.Require().NoError(err)

	profile.Level = 3
	_, err = s.repo.Save(s.ctx, profiles.SaveInput{Profile: profile})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, profiles.GetInput{ParticipantID: "player_1"})
	s.Require().NoError(err)
	s.Equal(3, out.Profile.Level)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	profile := testutils.NewTestProfile("player_1", 1)
	_, err := s.repo.Save(s.ctx, profiles.SaveInput{Profile: profile})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, profiles.DeleteInput{ParticipantID: "player_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, profiles.GetInput{ParticipantID: "player_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, profiles.DeleteInput{ParticipantID: "player_1"})
	s.True(errors.IsNotFound(err))
}
