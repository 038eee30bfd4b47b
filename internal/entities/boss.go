package entities

// BossStats describes one boss instance. Immutable once the boss spawns.
type BossStats struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // host engine entity kind
	MaxHealth   float64 `json:"max_health"`
	Damage      float64 `json:"damage"`
	Defense     float64 `json:"defense"`
	Speed       float64 `json:"speed"`
	AttackSpeed float64 `json:"attack_speed"`
	Experience  int64   `json:"experience"`

	Abilities []string           `json:"abilities,omitempty"`
	Drops     map[string]float64 `json:"drops,omitempty"` // item name to drop chance
}

// ActorStats projects the boss stats onto the spawn contract the host
// engine understands.
func (b BossStats) ActorStats() ActorStats {
	return ActorStats{
		Health: b.MaxHealth,
		Damage: b.Damage,
		Speed:  b.Speed,
		Armor:  b.Defense,
	}
}
