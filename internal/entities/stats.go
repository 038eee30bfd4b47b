package entities

import (
	"fmt"
	"strings"
	"time"
)

// ParticipantStats tracks a participant's aggregate combat metrics across
// all dungeon runs.
type ParticipantStats struct {
	MobsKilled        int           `json:"mobs_killed"`
	BossesKilled      int           `json:"bosses_killed"`
	TotalDeaths       int           `json:"total_deaths"`
	TotalDamageDealt  float64       `json:"total_damage_dealt"`
	TotalDamageTaken  float64       `json:"total_damage_taken"`
	HighestDamageHit  float64       `json:"highest_damage_hit"`
	TotalGoldEarned   float64       `json:"total_gold_earned"`
	TotalTimeInRuns   time.Duration `json:"total_time_in_runs"`
}

// RecordKill increments the appropriate kill counter
func (s *ParticipantStats) RecordKill(boss bool) {
	if boss {
		s.BossesKilled++
	} else {
		s.MobsKilled++
	}
}

// RecordDamageDealt adds dealt damage and tracks the highest single hit
func (s *ParticipantStats) RecordDamageDealt(amount float64) {
	s.TotalDamageDealt += amount
	if amount > s.HighestDamageHit {
		s.HighestDamageHit = amount
	}
}

// RecordDamageTaken adds taken damage
func (s *ParticipantStats) RecordDamageTaken(amount float64) {
	s.TotalDamageTaken += amount
}

// RecordDeath increments the death counter
func (s *ParticipantStats) RecordDeath() {
	s.TotalDeaths++
}

// RecordGoldEarned adds earned gold
func (s *ParticipantStats) RecordGoldEarned(amount float64) {
	s.TotalGoldEarned += amount
}

// RecordRunTime adds time spent inside a dungeon run
func (s *ParticipantStats) RecordRunTime(d time.Duration) {
	s.TotalTimeInRuns += d
}

// KDRatio returns kills per death, 0 when the participant never died
func (s *ParticipantStats) KDRatio() float64 {
	if s.TotalDeaths == 0 {
		return 0
	}
	return float64(s.MobsKilled+s.BossesKilled) / float64(s.TotalDeaths)
}

// AverageDamagePerKill returns mean damage per kill, 0 without kills
func (s *ParticipantStats) AverageDamagePerKill() float64 {
	kills := s.MobsKilled + s.BossesKilled
	if kills == 0 {
		return 0
	}
	return s.TotalDamageDealt / float64(kills)
}

// FormatTotalTime renders the accumulated run time as "2h 30m 15s"
func (s *ParticipantStats) FormatTotalTime() string {
	total := int64(s.TotalTimeInRuns.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}
