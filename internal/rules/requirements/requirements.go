// Package requirements implements the admission rules that gate dungeon
// entry. A requirement is a pure predicate over a participant profile
// snapshot; malformed specs are rejected at parse time so evaluation can
// never fail.
package requirements

import (
	"fmt"
	"time"

	"github.com/hypedmc/dungeon-api/internal/entities"
)

// Requirement is one admission predicate
type Requirement interface {
	// Check reports whether the profile satisfies the requirement.
	// Never mutates the profile.
	Check(profile *entities.ParticipantProfile) bool

	// Description returns a human-readable form of the requirement,
	// used when reporting unmet conditions back to the participant.
	Description() string
}

// MinimumLevel requires the participant to have reached a level
type MinimumLevel struct {
	Level int
}

// Check implements Requirement
func (r MinimumLevel) Check(profile *entities.ParticipantProfile) bool {
	return profile.Level >= r.Level
}

// Description implements Requirement
func (r MinimumLevel) Description() string {
	return fmt.Sprintf("reach level %d", r.Level)
}

// MinimumCompletions requires a number of completions of another dungeon
type MinimumCompletions struct {
	TemplateID  string
	Completions int
}

// Check implements Requirement
func (r MinimumCompletions) Check(profile *entities.ParticipantProfile) bool {
	return profile.CompletionCount(r.TemplateID) >= r.Completions
}

// Description implements Requirement
func (r MinimumCompletions) Description() string {
	return fmt.Sprintf("complete %s %d times", r.TemplateID, r.Completions)
}

// BestTime requires a completion of another dungeon at or under a
// threshold.
type BestTime struct {
	TemplateID      string
	ThresholdMillis int64
}

// Check implements Requirement
func (r BestTime) Check(profile *entities.ParticipantProfile) bool {
	best, ok := profile.BestTime(r.TemplateID)
	if !ok {
		return false
	}
	return best <= r.ThresholdMillis
}

// Description implements Requirement
func (r BestTime) Description() string {
	d := time.Duration(r.ThresholdMillis) * time.Millisecond
	total := int64(d.Seconds())
	return fmt.Sprintf("clear %s in %02d:%02d or better", r.TemplateID, total/60, total%60)
}

// HasAchievement requires an unlocked achievement
type HasAchievement struct {
	AchievementID string
}

// Check implements Requirement
func (r HasAchievement) Check(profile *entities.ParticipantProfile) bool {
	return profile.HasAchievement(r.AchievementID)
}

// Description implements Requirement
func (r HasAchievement) Description() string {
	return fmt.Sprintf("unlock achievement %s", r.AchievementID)
}
