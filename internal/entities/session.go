package entities

import (
	"fmt"
	"time"
)

// SessionPhase represents the lifecycle state of a dungeon session
type SessionPhase string

// Session phases. Waiting and Starting are transient matchmaking states;
// Finished and Cancelled are terminal.
const (
	PhaseWaiting    SessionPhase = "WAITING"
	PhaseStarting   SessionPhase = "STARTING"
	PhaseInProgress SessionPhase = "IN_PROGRESS"
	PhaseBossFight  SessionPhase = "BOSS_FIGHT"
	PhaseFinished   SessionPhase = "FINISHED"
	PhaseCancelled  SessionPhase = "CANCELLED"
)

// String returns the string representation of the phase
func (p SessionPhase) String() string {
	return string(p)
}

// Terminal reports whether the phase is an end state
func (p SessionPhase) Terminal() bool {
	return p == PhaseFinished || p == PhaseCancelled
}

// Joinable reports whether a session in this phase may accept new
// participants.
func (p SessionPhase) Joinable() bool {
	return p == PhaseWaiting || p == PhaseStarting
}

// DungeonSession is one live instance of a template with its own arena and
// participant set. The session orchestrator owns all mutation.
type DungeonSession struct {
	ID       string           `json:"id"`
	Template *DungeonTemplate `json:"-"`

	// Arena is empty until provisioning completes
	Arena ArenaHandle `json:"arena,omitempty"`

	Phase        SessionPhase        `json:"phase"`
	Participants map[string]struct{} `json:"participants"`

	StartedAt    time.Time     `json:"started_at"`
	MobsKilled   int           `json:"mobs_killed"`
	BossesKilled int           `json:"bosses_killed"`
	CompletedIn  time.Duration `json:"completed_in,omitempty"`
}

// NewSession creates a session in the Waiting phase
func NewSession(id string, template *DungeonTemplate, now time.Time) *DungeonSession {
	return &DungeonSession{
		ID:           id,
		Template:     template,
		Phase:        PhaseWaiting,
		Participants: make(map[string]struct{}),
		StartedAt:    now,
	}
}

// AddParticipant adds a participant. Returns false if already present.
func (s *DungeonSession) AddParticipant(participantID string) bool {
	if _, ok := s.Participants[participantID]; ok {
		return false
	}
	s.Participants[participantID] = struct{}{}
	return true
}

// RemoveParticipant removes a participant. Returns false if not present.
func (s *DungeonSession) RemoveParticipant(participantID string) bool {
	if _, ok := s.Participants[participantID]; !ok {
		return false
	}
	delete(s.Participants, participantID)
	return true
}

// HasParticipant checks membership
func (s *DungeonSession) HasParticipant(participantID string) bool {
	_, ok := s.Participants[participantID]
	return ok
}

// ParticipantIDs returns a copy of the participant set
func (s *DungeonSession) ParticipantIDs() []string {
	ids := make([]string, 0, len(s.Participants))
	for id := range s.Participants {
		ids = append(ids, id)
	}
	return ids
}

// Empty reports whether the session has no participants
func (s *DungeonSession) Empty() bool {
	return len(s.Participants) == 0
}

// Full reports whether the session is at template capacity
func (s *DungeonSession) Full() bool {
	return len(s.Participants) >= s.Template.MaxPlayers
}

// RecordKill increments the session's kill counters
func (s *DungeonSession) RecordKill(boss bool) {
	if boss {
		s.BossesKilled++
	} else {
		s.MobsKilled++
	}
}

// Complete marks the session finished and records the completion duration.
// Idempotent.
func (s *DungeonSession) Complete(now time.Time) {
	if s.Phase == PhaseFinished {
		return
	}
	s.Phase = PhaseFinished
	s.CompletedIn = now.Sub(s.StartedAt)
}

// Elapsed returns the session's running time, or the completion duration
// once finished.
func (s *DungeonSession) Elapsed(now time.Time) time.Duration {
	if s.CompletedIn > 0 {
		return s.CompletedIn
	}
	return now.Sub(s.StartedAt)
}

// FormatElapsed renders a duration as "2m 30s"
func FormatElapsed(d time.Duration) string {
	total := int64(d.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
