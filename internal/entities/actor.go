package entities

// ActorStats are the effective stats applied to one spawned hostile actor
type ActorStats struct {
	Health float64 `json:"health"`
	Damage float64 `json:"damage"`
	Speed  float64 `json:"speed"`
	Armor  float64 `json:"armor"`
}

// Scale multiplies health, damage, and armor by the difficulty
// multiplier. Movement speed is left at its base value so scaled mobs hit
// harder without outrunning participants.
func (s ActorStats) Scale(multiplier float64) ActorStats {
	return ActorStats{
		Health: s.Health * multiplier,
		Damage: s.Damage * multiplier,
		Speed:  s.Speed,
		Armor:  s.Armor * multiplier,
	}
}

// ActorType is the template for a spawnable hostile actor
type ActorType struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`     // host engine entity kind
	NameKey string `json:"name_key"` // display-name key, resolved by the host UI

	BaseHealth float64 `json:"base_health"`
	BaseDamage float64 `json:"base_damage"`
	BaseSpeed  float64 `json:"base_speed"`
	BaseArmor  float64 `json:"base_armor"`
}

// BaseStats returns the type's unscaled stats
func (t ActorType) BaseStats() ActorStats {
	return ActorStats{
		Health: t.BaseHealth,
		Damage: t.BaseDamage,
		Speed:  t.BaseSpeed,
		Armor:  t.BaseArmor,
	}
}

// Built-in hostile actor catalog
var (
	FrozenZombie = ActorType{
		Name:       "frozen_zombie",
		Kind:       "zombie",
		NameKey:    "mobs.frozen_cave.zombie",
		BaseHealth: 30,
		BaseDamage: 5,
		BaseSpeed:  0.23,
		BaseArmor:  2,
	}
	IceSkeleton = ActorType{
		Name:       "ice_skeleton",
		Kind:       "skeleton",
		NameKey:    "mobs.frozen_cave.skeleton",
		BaseHealth: 25,
		BaseDamage: 7,
		BaseSpeed:  0.25,
		BaseArmor:  1,
	}
	FrostSpider = ActorType{
		Name:       "frost_spider",
		Kind:       "spider",
		NameKey:    "mobs.frozen_cave.spider",
		BaseHealth: 20,
		BaseDamage: 4,
		BaseSpeed:  0.3,
		BaseArmor:  0,
	}
	TempleGuardian = ActorType{
		Name:       "temple_guardian",
		Kind:       "wither_skeleton",
		NameKey:    "mobs.lost_temple.guardian",
		BaseHealth: 40,
		BaseDamage: 8,
		BaseSpeed:  0.2,
		BaseArmor:  4,
	}
	CursedVillager = ActorType{
		Name:       "cursed_villager",
		Kind:       "zombie_villager",
		NameKey:    "mobs.lost_temple.cursed_villager",
		BaseHealth: 35,
		BaseDamage: 6,
		BaseSpeed:  0.23,
		BaseArmor:  2,
	}
	JungleCreeper = ActorType{
		Name:       "jungle_creeper",
		Kind:       "creeper",
		NameKey:    "mobs.lost_temple.jungle_creeper",
		BaseHealth: 20,
		BaseDamage: 10,
		BaseSpeed:  0.25,
		BaseArmor:  0,
	}
)

var actorTypes = map[string]ActorType{
	FrozenZombie.Name:   FrozenZombie,
	IceSkeleton.Name:    IceSkeleton,
	FrostSpider.Name:    FrostSpider,
	TempleGuardian.Name: TempleGuardian,
	CursedVillager.Name: CursedVillager,
	JungleCreeper.Name:  JungleCreeper,
}

// ActorTypeByName looks up a catalog entry by its name
func ActorTypeByName(name string) (ActorType, bool) {
	t, ok := actorTypes[name]
	return t, ok
}
