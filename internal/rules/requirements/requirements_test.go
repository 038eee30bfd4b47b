package requirements_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/rules/requirements"
)

type RequirementsTestSuite struct {
	suite.Suite
	profile *entities.ParticipantProfile
}

func TestRequirementsSuite(t *testing.T) {
	suite.Run(t, new(RequirementsTestSuite))
}

func (s *RequirementsTestSuite) SetupTest() {
	s.profile = entities.NewProfile("alice")
	s.profile.Level = 8
	s.profile.RecordCompletion("crypt", 95_000)
	s.profile.RecordCompletion("crypt", 120_000)
	s.profile.UnlockAchievement("first_blood")
}

func (s *RequirementsTestSuite) TestParse() {
	testCases := []struct {
		spec     string
		expected requirements.Requirement
	}{
		{"level:10", requirements.MinimumLevel{Level: 10}},
		{"completion:crypt:5", requirements.MinimumCompletions{TemplateID: "crypt", Completions: 5}},
		{"besttime:crypt:90000", requirements.BestTime{TemplateID: "crypt", ThresholdMillis: 90000}},
		{"achievement:first_blood", requirements.HasAchievement{AchievementID: "first_blood"}},
	}

	for _, tc := range testCases {
		s.Run(tc.spec, func() {
			req, err := requirements.Parse(tc.spec)
			s.Require().NoError(err)
			s.Equal(tc.expected, req)
		})
	}
}

func (s *RequirementsTestSuite) TestParseRejectsMalformedSpecs() {
	for _, spec := range []string{
		"",
		"level",
		"level:abc",
		"level:0",
		"completion:crypt",
		"completion:crypt:zero",
		"besttime:crypt",
		"besttime:crypt:-5",
		"achievement:",
		"loot:legendary",
	} {
		s.Run(spec, func() {
			_, err := requirements.Parse(spec)
			s.Error(err)
		})
	}
}

func (s *RequirementsTestSuite) TestParseAllFailsFast() {
	reqs, err := requirements.ParseAll([]string{"level:5", "achievement:first_blood"})
	s.Require().NoError(err)
	s.Len(reqs, 2)

	_, err = requirements.ParseAll([]string{"level:5", "bogus:1"})
	s.Error(err)
}

func (s *RequirementsTestSuite) TestChecks() {
	s.True(requirements.MinimumLevel{Level: 8}.Check(s.profile))
	s.False(requirements.MinimumLevel{Level: 9}.Check(s.profile))

	s.True(requirements.MinimumCompletions{TemplateID: "crypt", Completions: 2}.Check(s.profile))
	s.False(requirements.MinimumCompletions{TemplateID: "crypt", Completions: 3}.Check(s.profile))
	s.False(requirements.MinimumCompletions{TemplateID: "temple", Completions: 1}.Check(s.profile))

	s.True(requirements.BestTime{TemplateID: "crypt", ThresholdMillis: 95_000}.Check(s.profile))
	s.False(requirements.BestTime{TemplateID: "crypt", ThresholdMillis: 90_000}.Check(s.profile))
	s.False(requirements.BestTime{TemplateID: "temple", ThresholdMillis: 90_000}.Check(s.profile))

	s.True(requirements.HasAchievement{AchievementID: "first_blood"}.Check(s.profile))
	s.False(requirements.HasAchievement{AchievementID: "speed_runner"}.Check(s.profile))
}

func (s *RequirementsTestSuite) TestEvaluateCollectsAllFailuresInOrder() {
	reqs := []requirements.Requirement{
		requirements.MinimumLevel{Level: 10},
		requirements.HasAchievement{AchievementID: "first_blood"},
		requirements.MinimumCompletions{TemplateID: "crypt", Completions: 5},
	}

	ok, failed := requirements.Evaluate(s.profile, reqs)
	s.False(ok)
	s.Require().Len(failed, 2)
	s.Equal(requirements.MinimumLevel{Level: 10}, failed[0])
	s.Equal(requirements.MinimumCompletions{TemplateID: "crypt", Completions: 5}, failed[1])
}

func (s *RequirementsTestSuite) TestEvaluateAllMet() {
	reqs := []requirements.Requirement{
		requirements.MinimumLevel{Level: 5},
		requirements.HasAchievement{AchievementID: "first_blood"},
	}

	ok, failed := requirements.Evaluate(s.profile, reqs)
	s.True(ok)
	s.Empty(failed)
}

func (s *RequirementsTestSuite) TestDescribe() {
	reqs := []requirements.Requirement{
		requirements.MinimumLevel{Level: 10},
		requirements.BestTime{TemplateID: "crypt", ThresholdMillis: 90_000},
	}

	s.Equal([]string{
		"reach level 10",
		"clear crypt in 01:30 or better",
	}, requirements.Describe(reqs))
}
