package session

import (
	"time"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
)

// JoinResult is the outcome of a join attempt. Everything except
// ResultSuccess leaves all state untouched.
type JoinResult string

// Join results
const (
	ResultSuccess            JoinResult = "SUCCESS"
	ResultDungeonNotFound    JoinResult = "DUNGEON_NOT_FOUND"
	ResultAlreadyInDungeon   JoinResult = "ALREADY_IN_DUNGEON"
	ResultDungeonFull        JoinResult = "DUNGEON_FULL"
	ResultRequirementsNotMet JoinResult = "REQUIREMENTS_NOT_MET"
)

// LeaveResult is the outcome of a leave attempt
type LeaveResult string

// Leave results
const (
	LeaveResultSuccess      LeaveResult = "SUCCESS"
	LeaveResultNotInDungeon LeaveResult = "NOT_IN_DUNGEON"
)

// JoinInput defines the input for joining a dungeon
type JoinInput struct {
	ParticipantID string
	TemplateID    string
}

// JoinOutput defines the output for joining a dungeon
type JoinOutput struct {
	Result    JoinResult
	SessionID string

	// FailedRequirements lists every unmet requirement, in template
	// order, when Result is ResultRequirementsNotMet
	FailedRequirements []string
}

// LeaveInput defines the input for leaving a dungeon
type LeaveInput struct {
	ParticipantID string
}

// LeaveOutput defines the output for leaving a dungeon
type LeaveOutput struct {
	Result    LeaveResult
	SessionID string
}

// GetSessionStatusInput defines the input for a session status query.
// Exactly one of SessionID or ParticipantID must be set.
type GetSessionStatusInput struct {
	SessionID     string
	ParticipantID string
}

// SessionStatus is a read-only snapshot of one session
type SessionStatus struct {
	SessionID    string
	TemplateID   string
	TemplateName string
	Phase        entities.SessionPhase
	Participants []string
	Arena        entities.ArenaHandle

	Elapsed        time.Duration
	ElapsedDisplay string
	MobsKilled     int
	BossesKilled   int
	MobsRemaining  int
	CountdownTicks int
	Bosses         []boss.Summary
}

// GetSessionStatusOutput defines the output for a session status query
type GetSessionStatusOutput struct {
	Status *SessionStatus
}

// ListSessionsInput defines the input for listing sessions
type ListSessionsInput struct {
	// TemplateID filters to one template when set
	TemplateID string

	// JoinableOnly drops sessions that cannot accept participants
	JoinableOnly bool
}

// ListSessionsOutput defines the output for listing sessions
type ListSessionsOutput struct {
	Sessions []*SessionStatus
}

// GetParticipantStatsInput defines the input for a participant stats query
type GetParticipantStatsInput struct {
	ParticipantID string
}

// GetParticipantStatsOutput defines the output for a participant stats query
type GetParticipantStatsOutput struct {
	Profile *entities.ParticipantProfile
}

// StartSessionInput defines the input for force-starting a session
type StartSessionInput struct {
	SessionID string
}

// StartSessionOutput defines the output for force-starting a session
type StartSessionOutput struct {
	Phase entities.SessionPhase
}

// StopSessionInput defines the input for cancelling a session
type StopSessionInput struct {
	SessionID string
}

// StopSessionOutput defines the output for cancelling a session
type StopSessionOutput struct {
}

// ResetSessionInput defines the input for resetting a session
type ResetSessionInput struct {
	SessionID string
}

// ResetSessionOutput defines the output for resetting a session
type ResetSessionOutput struct {
	Phase entities.SessionPhase
}

// ReloadTemplatesInput defines the input for reloading the catalog
type ReloadTemplatesInput struct {
}

// ReloadTemplatesOutput defines the output for reloading the catalog
type ReloadTemplatesOutput struct {
	Count int
}

// RecordKillInput defines the input for crediting a kill
type RecordKillInput struct {
	Arena         entities.ArenaHandle
	ParticipantID string

	// ActorType names the killed actor's type, for logging
	ActorType string
}

// RecordKillOutput defines the output for crediting a kill
type RecordKillOutput struct {
	// BossFightStarted is true when this kill cleared the last mob and
	// triggered the boss fight
	BossFightStarted bool

	// SessionFinished is true when this kill completed the session
	SessionFinished bool
}

// RecordDamageInput defines the input for crediting damage dealt or taken
type RecordDamageInput struct {
	ParticipantID string
	Amount        float64

	// Taken marks damage the participant received rather than dealt
	Taken bool
}

// RecordDamageOutput defines the output for crediting damage
type RecordDamageOutput struct {
}
