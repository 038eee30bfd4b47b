package entities

import "fmt"

// Difficulty is a dungeon difficulty tier. Each tier carries the stat
// multiplier applied to hostile actors spawned for that dungeon.
type Difficulty string

// Difficulty tiers
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyElite  Difficulty = "elite"
)

// String returns the string representation of the difficulty
func (d Difficulty) String() string {
	return string(d)
}

// IsValid checks if the difficulty is a known tier
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyElite:
		return true
	default:
		return false
	}
}

// Multiplier returns the stat multiplier for the tier
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.0
	case DifficultyElite:
		return 3.0
	default:
		return 1.0
	}
}

// ParseDifficulty converts a string to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}
