package templates

import (
	"context"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/rules/requirements"
)

// yamlCatalog is the on-disk schema of the dungeon catalog file
type yamlCatalog struct {
	Dungeons []yamlTemplate `yaml:"dungeons"`
}

type yamlTemplate struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Difficulty string `yaml:"difficulty"`
	MinLevel   int    `yaml:"min_level"`
	MinPlayers int    `yaml:"min_players"`
	MaxPlayers int    `yaml:"max_players"`

	SpawnPoint      entities.Location            `yaml:"spawn_point"`
	Boss            string                       `yaml:"boss"`
	BossSpawnPoints map[string]entities.Location `yaml:"boss_spawn_points"`
	MobSpawns       []yamlMobSpawn               `yaml:"mob_spawns"`
	Checkpoints     map[string]entities.Location `yaml:"checkpoints"`

	Requirements []string           `yaml:"requirements"`
	Rewards      map[string]float64 `yaml:"rewards"`
}

type yamlMobSpawn struct {
	Type     string            `yaml:"type"`
	Location entities.Location `yaml:"location"`
}

type yamlFileRepository struct {
	path string

	mu      sync.RWMutex
	catalog map[string]*StoredTemplate
	order   []string
}

// NewYAMLFileRepository loads the dungeon catalog from a YAML file. The
// initial load must succeed; later Reload failures keep the previous
// catalog live.
func NewYAMLFileRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.InvalidArgument("catalog path cannot be empty")
	}

	r := &yamlFileRepository{path: path}
	catalog, order, err := r.load()
	if err != nil {
		return nil, err
	}
	r.catalog = catalog
	r.order = order
	return r, nil
}

// load parses the file and validates every template. All errors surface
// at load time so a bad catalog never reaches matchmaking.
func (r *yamlFileRepository) load() (map[string]*StoredTemplate, []string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read catalog %s", r.path)
	}

	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse catalog %s", r.path)
	}

	catalog := make(map[string]*StoredTemplate, len(raw.Dungeons))
	order := make([]string, 0, len(raw.Dungeons))
	for i := range raw.Dungeons {
		stored, err := convertTemplate(&raw.Dungeons[i])
		if err != nil {
			return nil, nil, err
		}
		if _, dup := catalog[stored.Template.ID]; dup {
			return nil, nil, errors.InvalidArgumentf("duplicate template id %q", stored.Template.ID)
		}
		catalog[stored.Template.ID] = stored
		order = append(order, stored.Template.ID)
	}
	sort.Strings(order)
	return catalog, order, nil
}

func convertTemplate(raw *yamlTemplate) (*StoredTemplate, error) {
	vb := errors.NewValidationBuilder()
	if raw.ID == "" {
		vb.RequiredField("id")
	}
	if raw.Name == "" {
		vb.RequiredField("name")
	}
	if raw.MinPlayers < 1 {
		vb.InvalidField("min_players", "must be at least 1")
	}
	if raw.MaxPlayers < raw.MinPlayers {
		vb.InvalidField("max_players", "must be at least min_players")
	}

	difficulty, err := entities.ParseDifficulty(raw.Difficulty)
	if err != nil {
		vb.InvalidField("difficulty", err.Error())
	}
	for _, spawn := range raw.MobSpawns {
		if _, ok := entities.ActorTypeByName(spawn.Type); !ok {
			vb.Fieldf("mob_spawns", "unknown actor type %q", spawn.Type)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "template %q", raw.ID)
	}

	reqs, err := requirements.ParseAll(raw.Requirements)
	if err != nil {
		return nil, errors.Wrapf(err, "template %q", raw.ID)
	}

	template := &entities.DungeonTemplate{
		ID:              raw.ID,
		Name:            raw.Name,
		Description:     raw.Description,
		Difficulty:      difficulty,
		MinLevel:        raw.MinLevel,
		MinPlayers:      raw.MinPlayers,
		MaxPlayers:      raw.MaxPlayers,
		SpawnPoint:      raw.SpawnPoint,
		Boss:            raw.Boss,
		BossSpawnPoints: raw.BossSpawnPoints,
		Checkpoints:     raw.Checkpoints,
		Requirements:    raw.Requirements,
		Rewards:         raw.Rewards,
	}
	for _, spawn := range raw.MobSpawns {
		template.MobSpawns = append(template.MobSpawns, entities.MobSpawn{
			Type:     spawn.Type,
			Location: spawn.Location,
		})
	}

	return &StoredTemplate{Template: template, Requirements: reqs}, nil
}

func (r *yamlFileRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.TemplateID == "" {
		return nil, errors.InvalidArgument("template ID cannot be empty")
	}

	r.mu.RLock()
	stored, ok := r.catalog[input.TemplateID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("template %s not found", input.TemplateID)
	}

	return &GetOutput{Template: stored}, nil
}

func (r *yamlFileRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*StoredTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.catalog[id])
	}
	return &ListOutput{Templates: out}, nil
}

func (r *yamlFileRepository) Reload(ctx context.Context, input ReloadInput) (*ReloadOutput, error) {
	catalog, order, err := r.load()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.catalog = catalog
	r.order = order
	r.mu.Unlock()

	return &ReloadOutput{Count: len(catalog)}, nil
}
