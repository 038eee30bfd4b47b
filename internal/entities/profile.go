package entities

// ParticipantProfile is the persistent record for one participant: level,
// experience, per-template completions and best times, aggregate stats,
// and unlocked achievements. Owned by the profile repository; the core
// mutates cached copies and saves through it.
type ParticipantProfile struct {
	ID         string `json:"id"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
	Language   string `json:"language,omitempty"`

	Completions  map[string]int      `json:"completions"`
	BestTimes    map[string]int64    `json:"best_times"` // milliseconds, keyed by template id
	Stats        ParticipantStats    `json:"stats"`
	Achievements map[string]struct{} `json:"achievements"`
}

// NewProfile creates a fresh level-1 profile
func NewProfile(id string) *ParticipantProfile {
	return &ParticipantProfile{
		ID:           id,
		Level:        1,
		Completions:  make(map[string]int),
		BestTimes:    make(map[string]int64),
		Achievements: make(map[string]struct{}),
	}
}

// RequiredExperience returns the total experience required to reach a
// level. Quadratic curve so later levels cost progressively more.
func RequiredExperience(level int) int64 {
	return int64(100*level*level + 50*level)
}

// AddExperience adds experience and levels the participant up when the
// next threshold is crossed. Returns true on level up.
func (p *ParticipantProfile) AddExperience(amount int64) bool {
	p.Experience += amount
	if p.Experience >= RequiredExperience(p.Level+1) {
		p.Level++
		return true
	}
	return false
}

// RecordCompletion registers a completed run and updates the best time
// when the new one is faster.
func (p *ParticipantProfile) RecordCompletion(templateID string, completionMillis int64) {
	p.Completions[templateID]++

	best, ok := p.BestTimes[templateID]
	if !ok || completionMillis < best {
		p.BestTimes[templateID] = completionMillis
	}
}

// CompletionCount returns how many times the participant finished a
// template.
func (p *ParticipantProfile) CompletionCount(templateID string) int {
	return p.Completions[templateID]
}

// BestTime returns the best completion time in milliseconds, or false if
// the template was never finished.
func (p *ParticipantProfile) BestTime(templateID string) (int64, bool) {
	t, ok := p.BestTimes[templateID]
	return t, ok
}

// UnlockAchievement adds an achievement. Returns false if already held.
func (p *ParticipantProfile) UnlockAchievement(id string) bool {
	if _, ok := p.Achievements[id]; ok {
		return false
	}
	p.Achievements[id] = struct{}{}
	return true
}

// HasAchievement checks for an unlocked achievement
func (p *ParticipantProfile) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// Clone returns a deep copy. Async saves operate on clones so in-flight
// writes never observe later mutation.
func (p *ParticipantProfile) Clone() *ParticipantProfile {
	cp := *p
	cp.Completions = make(map[string]int, len(p.Completions))
	for k, v := range p.Completions {
		cp.Completions[k] = v
	}
	cp.BestTimes = make(map[string]int64, len(p.BestTimes))
	for k, v := range p.BestTimes {
		cp.BestTimes[k] = v
	}
	cp.Achievements = make(map[string]struct{}, len(p.Achievements))
	for k := range p.Achievements {
		cp.Achievements[k] = struct{}{}
	}
	return &cp
}
