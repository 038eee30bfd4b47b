package entities

// MobSpawn pairs an actor type name with the point it spawns at when a
// session enters its arena.
type MobSpawn struct {
	Type     string   `json:"type"`
	Location Location `json:"location"`
}

// DungeonTemplate is the immutable blueprint for a repeatable encounter.
// Loaded once from configuration; read-only afterwards. Sessions hold a
// shared reference and never mutate it.
type DungeonTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Difficulty Difficulty `json:"difficulty"`
	MinLevel   int        `json:"min_level"`
	MinPlayers int        `json:"min_players"`
	MaxPlayers int        `json:"max_players"`

	SpawnPoint      Location            `json:"spawn_point"`
	BossSpawnPoints map[string]Location `json:"boss_spawn_points,omitempty"`
	MobSpawns       []MobSpawn          `json:"mob_spawns,omitempty"`
	Checkpoints     map[string]Location `json:"checkpoints,omitempty"`

	// Requirements holds the raw requirement specs ("level:10", ...).
	// Parsed once at load time by the template repository.
	Requirements []string `json:"requirements,omitempty"`

	// Rewards maps item identifiers to drop probability. Loot
	// distribution itself is owned by the host game.
	Rewards map[string]float64 `json:"rewards,omitempty"`

	// Boss names the boss definition spawned on the boss-fight trigger
	Boss string `json:"boss,omitempty"`
}
