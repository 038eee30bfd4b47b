package templates_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/repositories/templates"
)

const validCatalog = `
dungeons:
  - id: frostkeep
    name: Frostkeep
    description: A frozen fortress
    difficulty: medium
    min_level: 5
    min_players: 1
    max_players: 4
    spawn_point: {x: 0, y: 64, z: 0}
    boss: frozen_king
    boss_spawn_points:
      frozen_king: {x: 20, y: 64, z: 20}
    mob_spawns:
      - type: frozen_zombie
        location: {x: 5, y: 64, z: 5}
      - type: ice_skeleton
        location: {x: -5, y: 64, z: 5}
    checkpoints:
      entrance: {x: 0, y: 64, z: 2}
    requirements:
      - "level:5"
      - "achievement:tutorial_done"
    rewards:
      ice_shard: 0.5
  - id: lost_temple
    name: Lost Temple
    difficulty: hard
    min_level: 10
    min_players: 2
    max_players: 6
    spawn_point: {x: 0, y: 70, z: 0}
    mob_spawns:
      - type: temple_guardian
        location: {x: 3, y: 70, z: 3}
    requirements:
      - "completion:frostkeep:3"
`

type YAMLFileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	path string
	ctx  context.Context
}

func TestYAMLFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(YAMLFileRepositoryTestSuite))
}

func (s *YAMLFileRepositoryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.path = filepath.Join(s.dir, "dungeons.yml")
	s.ctx = context.Background()
	s.write(validCatalog)
}

func (s *YAMLFileRepositoryTestSuite) write(content string) {
	s.Require().NoError(os.WriteFile(s.path, []byte(content), 0o644))
}

func (s *YAMLFileRepositoryTestSuite) TestLoadAndGet() {
	repo, err := templates.NewYAMLFileRepository(s.path)
	s.Require().NoError(err)

	out, err := repo.Get(s.ctx, templates.GetInput{TemplateID: "frostkeep"})
	s.Require().NoError(err)

	tpl := out.Template.Template
	s.Equal("Frostkeep", tpl.Name)
	s.Equal(entities.DifficultyMedium, tpl.Difficulty)
	s.Equal(1, tpl.MinPlayers)
	s.Equal(4, tpl.MaxPlayers)
	s.Equal("frozen_king", tpl.Boss)
	s.Equal(entities.Location{X: 20, Y: 64, Z: 20}, tpl.BossSpawnPoints["frozen_king"])
	s.Require().Len(tpl.MobSpawns, 2)
	s.Equal("frozen_zombie", tpl.MobSpawns[0].Type)
	s.Equal(0.5, tpl.Rewards["ice_shard"])

	// requirements parsed at load time
	s.Len(out.Template.Requirements, 2)
}

func (s *YAMLFileRepositoryTestSuite) TestListStableOrder() {
	repo, err := templates.NewYAMLFileRepository(s.path)
	s.Require().NoError(err)

	out, err := repo.List(s.ctx, templates.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Templates, 2)
	s.Equal("frostkeep", out.Templates[0].Template.ID)
	s.Equal("lost_temple", out.Templates[1].Template.ID)
}

func (s *YAMLFileRepositoryTestSuite) TestGetMissing() {
	repo, err := templates.NewYAMLFileRepository(s.path)
	s.Require().NoError(err)

	_, err = repo.Get(s.ctx, templates.GetInput{TemplateID: "nope"})
	s.True(errors.IsNotFound(err))
}

func (s *YAMLFileRepositoryTestSuite) TestMalformedRequirementFailsLoad() {
	s.write(`
dungeons:
  - id: broken
    name: Broken
    difficulty: easy
    min_players: 1
    max_players: 4
    requirements:
      - "level:abc"
`)
	_, err := templates.NewYAMLFileRepository(s.path)
	s.Require().Error(err)
	s.Contains(err.Error(), "broken")
}

func (s *YAMLFileRepositoryTestSuite) TestUnknownActorTypeFailsLoad() {
	s.write(`
dungeons:
  - id: broken
    name: Broken
    difficulty: easy
    min_players: 1
    max_players: 4
    mob_spawns:
      - type: dragon
        location: {x: 0, y: 0, z: 0}
`)
	_, err := templates.NewYAMLFileRepository(s.path)
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *YAMLFileRepositoryTestSuite) TestInvalidCapacityFailsLoad() {
	s.write(`
dungeons:
  - id: broken
    name: Broken
    difficulty: easy
    min_players: 3
    max_players: 2
`)
	_, err := templates.NewYAMLFileRepository(s.path)
	s.Require().Error(err)
}

func (s *YAMLFileRepositoryTestSuite) TestDuplicateIDFailsLoad() {
	s.write(`
dungeons:
  - id: twin
    name: Twin A
    difficulty: easy
    min_players: 1
    max_players: 2
  - id: twin
    name: Twin B
    difficulty: easy
    min_players: 1
    max_players: 2
`)
	_, err := templates.NewYAMLFileRepository(s.path)
	s.Require().Error(err)
	s.Contains(err.Error(), "duplicate")
}

func (s *YAMLFileRepositoryTestSuite) TestReloadSwapsCatalog() {
	repo, err := templates.NewYAMLFileRepository(s.path)
	s.Require().NoError(err)

	s.write(`
dungeons:
  - id: solo
    name: Solo
    difficulty: easy
    min_players: 1
    max_players: 1
`)
	out, err := repo.Reload(s.ctx, templates.ReloadInput{})
	s.Require().NoError(err)
	s.Equal(1, out.Count)

	_, err = repo.Get(s.ctx, templates.GetInput{TemplateID: "frostkeep"})
	s.True(errors.IsNotFound(err))
}

func (s *YAMLFileRepositoryTestSuite) TestReloadFailureKeepsPreviousCatalog() {
	repo, err := templates.NewYAMLFileRepository(s.path)
	s.Require().NoError(err)

	s.write(`dungeons: [{id: "", name: ""`)
	_, err = repo.Reload(s.ctx, templates.ReloadInput{})
	s.Require().Error(err)

	out, err := repo.Get(s.ctx, templates.GetInput{TemplateID: "frostkeep"})
	s.Require().NoError(err)
	s.Equal("Frostkeep", out.Template.Template.Name)
}
