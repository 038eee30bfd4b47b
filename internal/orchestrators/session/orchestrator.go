// Package session implements the dungeon session orchestrator: matching
// participants into instanced sessions, driving the session lifecycle
// from matchmaking through the boss fight to completion, and settling
// progression into participant profiles.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/hypedmc/dungeon-api/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
	"github.com/hypedmc/dungeon-api/internal/pkg/clock"
	"github.com/hypedmc/dungeon-api/internal/pkg/idgen"
	"github.com/hypedmc/dungeon-api/internal/repositories/profiles"
	"github.com/hypedmc/dungeon-api/internal/repositories/templates"
	"github.com/hypedmc/dungeon-api/internal/rules/requirements"
)

// Service defines the session orchestrator interface
type Service interface {
	// Join matches a participant into a session for a template,
	// creating a new session when no joinable one exists. Outcomes
	// other than success are reported in the output, not as errors.
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes a participant from their session. A participant in
	// no session gets a not-in-dungeon result and nothing changes.
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// GetSessionStatus returns a snapshot of one session, looked up by
	// session ID or by participant
	GetSessionStatus(ctx context.Context, input *GetSessionStatusInput) (*GetSessionStatusOutput, error)

	// ListSessions returns snapshots of live sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// GetParticipantStats returns a participant's profile
	GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*GetParticipantStatsOutput, error)

	// StartSession force-starts a waiting session regardless of the
	// minimum player count
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// StopSession cancels a session, evicting its participants
	StopSession(ctx context.Context, input *StopSessionInput) (*StopSessionOutput, error)

	// ResetSession returns a session to the waiting phase with a clean
	// arena, keeping its participants
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// ReloadTemplates reloads the template catalog. Running sessions
	// keep the template they started with.
	ReloadTemplates(ctx context.Context, input *ReloadTemplatesInput) (*ReloadTemplatesOutput, error)

	// RecordKill credits a mob kill to a participant and advances the
	// session when the arena is cleared
	RecordKill(ctx context.Context, input *RecordKillInput) (*RecordKillOutput, error)

	// RecordDamage credits damage dealt or taken to a participant's
	// aggregate stats
	RecordDamage(ctx context.Context, input *RecordDamageInput) (*RecordDamageOutput, error)

	// Tick advances matchmaking countdowns. Called by the scheduler.
	Tick(ctx context.Context)

	// Shutdown cancels every session and flushes pending profile saves
	Shutdown(ctx context.Context) error
}

// Experience settlement constants
const (
	baseCompletionXP = 100
	mobKillXP        = 10
)

// Config holds the dependencies and tuning for the session orchestrator
type Config struct {
	World     engine.WorldProvider
	Actors    *actors.Coordinator
	Bosses    *boss.Manager
	Profiles  profiles.Repository
	Saver     *profiles.AsyncSaver
	Templates templates.Repository
	IDGen     idgen.Generator
	Clock     clock.Clock

	// MaxInstancesPerTemplate caps concurrent sessions per template.
	// Zero means unlimited.
	MaxInstancesPerTemplate int

	// CountdownTicks is how many scheduler ticks the starting phase
	// lasts before the run begins
	CountdownTicks int

	// ProvisionTimeout bounds a single arena allocation
	ProvisionTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.Actors == nil {
		vb.RequiredField("Actors")
	}
	if c.Bosses == nil {
		vb.RequiredField("Bosses")
	}
	if c.Profiles == nil {
		vb.RequiredField("Profiles")
	}
	if c.Saver == nil {
		vb.RequiredField("Saver")
	}
	if c.Templates == nil {
		vb.RequiredField("Templates")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.CountdownTicks < 0 {
		vb.InvalidField("CountdownTicks", "cannot be negative")
	}
	if c.ProvisionTimeout <= 0 {
		vb.InvalidField("ProvisionTimeout", "must be positive")
	}

	return vb.Build()
}

// liveSession is a session plus the runtime state the orchestrator
// tracks alongside it
type liveSession struct {
	*entities.DungeonSession

	stored *templates.StoredTemplate

	// countdown is the ticks left in the starting phase
	countdown int

	// forced skips the minimum player check once an operator
	// force-starts the session
	forced bool

	// provisionFailed marks a session whose arena never arrived
	provisionFailed bool

	// released guards the one-shot arena release
	released bool
}

type orchestrator struct {
	world     engine.WorldProvider
	actors    *actors.Coordinator
	bosses    *boss.Manager
	profiles  profiles.Repository
	saver     *profiles.AsyncSaver
	templates templates.Repository
	idGen     idgen.Generator
	clock     clock.Clock

	maxInstances     int
	countdownTicks   int
	provisionTimeout time.Duration

	mu            sync.RWMutex
	sessions      map[string]*liveSession
	order         []string // session IDs in creation order, for first-fit matching
	byParticipant map[string]string
	byArena       map[entities.ArenaHandle]string
	cache         map[string]*entities.ParticipantProfile

	provisioning sync.WaitGroup
}

// NewOrchestrator creates a session orchestrator with the provided
// dependencies and installs itself as the boss manager's death handler
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		world:            cfg.World,
		actors:           cfg.Actors,
		bosses:           cfg.Bosses,
		profiles:         cfg.Profiles,
		saver:            cfg.Saver,
		templates:        cfg.Templates,
		idGen:            cfg.IDGen,
		clock:            cfg.Clock,
		maxInstances:     cfg.MaxInstancesPerTemplate,
		countdownTicks:   cfg.CountdownTicks,
		provisionTimeout: cfg.ProvisionTimeout,
		sessions:         make(map[string]*liveSession),
		byParticipant:    make(map[string]string),
		byArena:          make(map[entities.ArenaHandle]string),
		cache:            make(map[string]*entities.ParticipantProfile),
	}
	cfg.Bosses.SetDeathHandler(o.onBossDefeated)
	return o, nil
}

func (o *orchestrator) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if input.ParticipantID == "" {
		vb.RequiredField("ParticipantID")
	}
	if input.TemplateID == "" {
		vb.RequiredField("TemplateID")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	tplOut, err := o.templates.Get(ctx, templates.GetInput{TemplateID: input.TemplateID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &JoinOutput{Result: ResultDungeonNotFound}, nil
		}
		return nil, err
	}
	stored := tplOut.Template

	profile, err := o.loadProfile(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	// requirement evaluation is pure; every unmet requirement is
	// reported, not just the first
	if met, failed := requirements.Evaluate(profile, stored.Requirements); !met {
		return &JoinOutput{
			Result:             ResultRequirementsNotMet,
			FailedRequirements: requirements.Describe(failed),
		}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.byParticipant[input.ParticipantID]; ok {
		return &JoinOutput{Result: ResultAlreadyInDungeon}, nil
	}

	// first-fit over creation order
	matching := 0
	for _, id := range o.order {
		sess, ok := o.sessions[id]
		if !ok {
			continue
		}
		if sess.Template.ID != input.TemplateID {
			continue
		}
		matching++
		if !sess.Phase.Joinable() || sess.Full() {
			continue
		}
		sess.AddParticipant(input.ParticipantID)
		o.byParticipant[input.ParticipantID] = sess.ID
		o.cacheProfile(profile)
		slog.Info("participant joined session",
			"participant", input.ParticipantID,
			"session", sess.ID,
			"template", input.TemplateID,
			"participants", len(sess.Participants),
		)
		return &JoinOutput{Result: ResultSuccess, SessionID: sess.ID}, nil
	}

	if o.maxInstances > 0 && matching >= o.maxInstances {
		return &JoinOutput{Result: ResultDungeonFull}, nil
	}

	sess := o.createSessionLocked(stored)
	sess.AddParticipant(input.ParticipantID)
	o.byParticipant[input.ParticipantID] = sess.ID
	o.cacheProfile(profile)

	slog.Info("session created",
		"session", sess.ID,
		"template", input.TemplateID,
		"participant", input.ParticipantID,
	)
	return &JoinOutput{Result: ResultSuccess, SessionID: sess.ID}, nil
}

// createSessionLocked registers a new waiting session and kicks off
// arena provisioning. Caller holds o.mu.
func (o *orchestrator) createSessionLocked(stored *templates.StoredTemplate) *liveSession {
	sess := &liveSession{
		DungeonSession: entities.NewSession(o.idGen.Generate(), stored.Template, o.clock.Now()),
		stored:         stored,
	}
	o.sessions[sess.ID] = sess
	o.order = append(o.order, sess.ID)

	o.provisioning.Add(1)
	go o.provision(sess)
	return sess
}

// provision allocates an arena off the tick loop. Allocation is bounded
// by the configured timeout and detached from the joining request's
// context, matchmaking outlives the request.
func (o *orchestrator) provision(sess *liveSession) {
	defer o.provisioning.Done()

	ctx, cancel := context.WithTimeout(context.Background(), o.provisionTimeout)
	defer cancel()

	arena, err := o.world.Allocate(ctx, sess.Template)

	o.mu.Lock()
	defer o.mu.Unlock()

	current, stillTracked := o.sessions[sess.ID]
	if !stillTracked || current != sess || sess.Phase.Terminal() {
		// session was cancelled while provisioning; hand the arena back
		if err == nil {
			o.releaseArenaAsync(arena)
		}
		return
	}

	if err != nil {
		slog.Error("arena provisioning failed",
			"session", sess.ID,
			"template", sess.Template.ID,
			"error", err,
		)
		sess.provisionFailed = true
		o.cancelLocked(context.Background(), sess)
		return
	}

	sess.Arena = arena
	o.byArena[arena] = sess.ID
	slog.Info("arena provisioned",
		"session", sess.ID,
		"arena", arena,
	)
}

func (o *orchestrator) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participant ID cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sessionID, ok := o.byParticipant[input.ParticipantID]
	if !ok {
		return &LeaveOutput{Result: LeaveResultNotInDungeon}, nil
	}
	sess := o.sessions[sessionID]

	sess.RemoveParticipant(input.ParticipantID)
	delete(o.byParticipant, input.ParticipantID)
	o.settleParticipantLocked(input.ParticipantID)

	slog.Info("participant left session",
		"participant", input.ParticipantID,
		"session", sessionID,
		"remaining", len(sess.Participants),
	)

	if sess.Empty() {
		o.cancelLocked(ctx, sess)
	} else if sess.Phase == entities.PhaseStarting && !sess.forced && len(sess.Participants) < sess.Template.MinPlayers {
		// countdown aborts when the party shrinks below minimum
		sess.Phase = entities.PhaseWaiting
		sess.countdown = 0
	}

	return &LeaveOutput{Result: LeaveResultSuccess, SessionID: sessionID}, nil
}

func (o *orchestrator) GetSessionStatus(ctx context.Context, input *GetSessionStatusInput) (*GetSessionStatusOutput, error) {
	if input == nil || (input.SessionID == "" && input.ParticipantID == "") {
		return nil, errors.InvalidArgument("session ID or participant ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	sessionID := input.SessionID
	if sessionID == "" {
		var ok bool
		sessionID, ok = o.byParticipant[input.ParticipantID]
		if !ok {
			return nil, errors.NotFoundf("participant %s is not in a session", input.ParticipantID)
		}
	}

	sess, ok := o.sessions[sessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}

	return &GetSessionStatusOutput{Status: o.statusLocked(sess)}, nil
}

func (o *orchestrator) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		input = &ListSessionsInput{}
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	out := &ListSessionsOutput{}
	for _, id := range o.order {
		sess, ok := o.sessions[id]
		if !ok {
			continue
		}
		if input.TemplateID != "" && sess.Template.ID != input.TemplateID {
			continue
		}
		if input.JoinableOnly && (!sess.Phase.Joinable() || sess.Full()) {
			continue
		}
		out.Sessions = append(out.Sessions, o.statusLocked(sess))
	}
	return out, nil
}

// statusLocked builds a snapshot. Caller holds o.mu.
func (o *orchestrator) statusLocked(sess *liveSession) *SessionStatus {
	elapsed := sess.Elapsed(o.clock.Now())
	status := &SessionStatus{
		SessionID:      sess.ID,
		TemplateID:     sess.Template.ID,
		TemplateName:   sess.Template.Name,
		Phase:          sess.Phase,
		Participants:   sess.ParticipantIDs(),
		Arena:          sess.Arena,
		Elapsed:        elapsed,
		ElapsedDisplay: entities.FormatElapsed(elapsed),
		MobsKilled:     sess.MobsKilled,
		BossesKilled:   sess.BossesKilled,
		CountdownTicks: sess.countdown,
	}
	if sess.Arena != "" {
		status.MobsRemaining = o.actors.CountForArena(sess.Arena)
		for _, summary := range o.bosses.Snapshot() {
			if summary.Arena == sess.Arena {
				status.Bosses = append(status.Bosses, summary)
			}
		}
	}
	return status
}

func (o *orchestrator) GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*GetParticipantStatsOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participant ID cannot be empty")
	}

	// clone while holding the lock; the scheduler mutates cached
	// profiles under it
	o.mu.RLock()
	cached, ok := o.cache[input.ParticipantID]
	if ok {
		snapshot := cached.Clone()
		o.mu.RUnlock()
		return &GetParticipantStatsOutput{Profile: snapshot}, nil
	}
	o.mu.RUnlock()

	out, err := o.profiles.Get(ctx, profiles.GetInput{ParticipantID: input.ParticipantID})
	if err != nil {
		return nil, err
	}
	return &GetParticipantStatsOutput{Profile: out.Profile}, nil
}

func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[input.SessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}
	if sess.Phase != entities.PhaseWaiting {
		return nil, errors.FailedPreconditionf("session %s is %s, only waiting sessions can be started", sess.ID, sess.Phase)
	}
	if sess.Arena == "" {
		return nil, errors.FailedPreconditionf("session %s has no arena yet", sess.ID)
	}

	sess.forced = true
	o.beginCountdownLocked(ctx, sess)
	return &StartSessionOutput{Phase: sess.Phase}, nil
}

func (o *orchestrator) StopSession(ctx context.Context, input *StopSessionInput) (*StopSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[input.SessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	for _, participantID := range sess.ParticipantIDs() {
		sess.RemoveParticipant(participantID)
		delete(o.byParticipant, participantID)
		o.settleParticipantLocked(participantID)
	}
	o.cancelLocked(ctx, sess)

	return &StopSessionOutput{}, nil
}

func (o *orchestrator) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[input.SessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}
	if sess.Phase.Terminal() {
		return nil, errors.FailedPreconditionf("session %s is already %s", sess.ID, sess.Phase)
	}

	if sess.Arena != "" {
		o.actors.RemoveAllForArena(ctx, sess.Arena)
		o.bosses.RemoveAllForArena(ctx, sess.Arena)
	}
	sess.Phase = entities.PhaseWaiting
	sess.countdown = 0
	sess.forced = false
	sess.MobsKilled = 0
	sess.BossesKilled = 0
	sess.StartedAt = o.clock.Now()
	sess.CompletedIn = 0

	slog.Info("session reset", "session", sess.ID)
	return &ResetSessionOutput{Phase: sess.Phase}, nil
}

func (o *orchestrator) ReloadTemplates(ctx context.Context, input *ReloadTemplatesInput) (*ReloadTemplatesOutput, error) {
	out, err := o.templates.Reload(ctx, templates.ReloadInput{})
	if err != nil {
		return nil, err
	}
	return &ReloadTemplatesOutput{Count: out.Count}, nil
}

func (o *orchestrator) RecordKill(ctx context.Context, input *RecordKillInput) (*RecordKillOutput, error) {
	if input == nil || input.Arena == "" {
		return nil, errors.InvalidArgument("arena cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sessionID, ok := o.byArena[input.Arena]
	if !ok {
		return nil, errors.NotFoundf("no session owns arena %s", input.Arena)
	}
	sess := o.sessions[sessionID]

	sess.RecordKill(false)
	if profile, ok := o.cache[input.ParticipantID]; ok {
		profile.Stats.RecordKill(false)
		profile.AddExperience(mobKillXP)
	}

	slog.Debug("mob killed",
		"session", sess.ID,
		"participant", input.ParticipantID,
		"type", input.ActorType,
	)

	out := &RecordKillOutput{}
	if sess.Phase == entities.PhaseInProgress && o.actors.CountForArena(input.Arena) == 0 {
		if sess.Template.Boss != "" {
			o.startBossFightLocked(ctx, sess)
			out.BossFightStarted = true
		} else {
			o.finishLocked(ctx, sess)
			out.SessionFinished = true
		}
	}
	return out, nil
}

func (o *orchestrator) RecordDamage(ctx context.Context, input *RecordDamageInput) (*RecordDamageOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participant ID cannot be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if profile, ok := o.cache[input.ParticipantID]; ok {
		if input.Taken {
			profile.Stats.RecordDamageTaken(input.Amount)
		} else {
			profile.Stats.RecordDamageDealt(input.Amount)
		}
	}
	return &RecordDamageOutput{}, nil
}

// Tick advances matchmaking state for every session
func (o *orchestrator) Tick(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, id := range o.order {
		sess, ok := o.sessions[id]
		if !ok {
			continue
		}
		switch sess.Phase {
		case entities.PhaseWaiting:
			if sess.Arena != "" && len(sess.Participants) >= sess.Template.MinPlayers {
				o.beginCountdownLocked(ctx, sess)
			}
		case entities.PhaseStarting:
			if sess.countdown > 0 {
				sess.countdown--
			}
			if sess.countdown == 0 {
				o.beginRunLocked(ctx, sess)
			}
		}
	}
	o.pruneOrderLocked()
}

// beginCountdownLocked moves a session into the starting phase. Caller
// holds o.mu.
func (o *orchestrator) beginCountdownLocked(ctx context.Context, sess *liveSession) {
	sess.Phase = entities.PhaseStarting
	sess.countdown = o.countdownTicks
	slog.Info("session countdown started",
		"session", sess.ID,
		"ticks", sess.countdown,
	)
	if sess.countdown == 0 {
		o.beginRunLocked(ctx, sess)
	}
}

// beginRunLocked starts the run: the timer resets and the template's
// mobs spawn into the arena. Caller holds o.mu.
func (o *orchestrator) beginRunLocked(ctx context.Context, sess *liveSession) {
	sess.Phase = entities.PhaseInProgress
	sess.StartedAt = o.clock.Now()

	multiplier := sess.Template.Difficulty.Multiplier()
	spawned := 0
	for _, spawn := range sess.Template.MobSpawns {
		typ, ok := entities.ActorTypeByName(spawn.Type)
		if !ok {
			continue // validated at load time
		}
		if _, err := o.actors.Spawn(ctx, typ, spawn.Location.InArena(sess.Arena), multiplier); err != nil {
			slog.Error("failed to spawn mob",
				"session", sess.ID,
				"type", spawn.Type,
				"error", err,
			)
			continue
		}
		spawned++
	}

	slog.Info("session started",
		"session", sess.ID,
		"template", sess.Template.ID,
		"participants", len(sess.Participants),
		"mobs", spawned,
	)

	// a template with no mobs and no boss completes on entry
	if spawned == 0 {
		if sess.Template.Boss != "" {
			o.startBossFightLocked(ctx, sess)
		} else {
			o.finishLocked(ctx, sess)
		}
	}
}

// startBossFightLocked transitions to the boss fight and spawns the
// boss. Caller holds o.mu.
func (o *orchestrator) startBossFightLocked(ctx context.Context, sess *liveSession) {
	sess.Phase = entities.PhaseBossFight

	location, ok := sess.Template.BossSpawnPoints[sess.Template.Boss]
	if !ok {
		location = sess.Template.SpawnPoint
	}

	if _, err := o.bosses.Spawn(ctx, sess.Template.Boss, location.InArena(sess.Arena)); err != nil {
		slog.Error("failed to spawn boss, finishing session without it",
			"session", sess.ID,
			"boss", sess.Template.Boss,
			"error", err,
		)
		o.finishLocked(ctx, sess)
		return
	}

	slog.Info("boss fight started",
		"session", sess.ID,
		"boss", sess.Template.Boss,
	)
}

// onBossDefeated is the boss manager's death handler
func (o *orchestrator) onBossDefeated(ctx context.Context, enc *boss.Encounter) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sessionID, ok := o.byArena[enc.Location.Arena]
	if !ok {
		return
	}
	sess := o.sessions[sessionID]

	sess.RecordKill(true)
	// the whole party gets credit and the boss's experience
	for participantID := range sess.Participants {
		if profile, ok := o.cache[participantID]; ok {
			profile.Stats.RecordKill(true)
			profile.AddExperience(enc.Stats.Experience)
		}
	}
	o.finishLocked(ctx, sess)
}

// finishLocked completes a session: progression settles into every
// participant's profile, saves are enqueued, and the arena is torn down.
// Caller holds o.mu.
func (o *orchestrator) finishLocked(ctx context.Context, sess *liveSession) {
	now := o.clock.Now()
	sess.Complete(now)
	elapsed := sess.CompletedIn

	for participantID := range sess.Participants {
		profile, ok := o.cache[participantID]
		if !ok {
			continue
		}
		profile.RecordCompletion(sess.Template.ID, elapsed.Milliseconds())
		profile.Stats.RecordRunTime(elapsed)
		if leveled := profile.AddExperience(int64(float64(baseCompletionXP) * sess.Template.Difficulty.Multiplier())); leveled {
			slog.Info("participant leveled up",
				"participant", participantID,
				"level", profile.Level,
			)
		}
	}

	slog.Info("session finished",
		"session", sess.ID,
		"template", sess.Template.ID,
		"elapsed", entities.FormatElapsed(elapsed),
		"mobs_killed", sess.MobsKilled,
		"bosses_killed", sess.BossesKilled,
	)

	for _, participantID := range sess.ParticipantIDs() {
		sess.RemoveParticipant(participantID)
		delete(o.byParticipant, participantID)
		o.settleParticipantLocked(participantID)
	}
	o.teardownLocked(ctx, sess)
	delete(o.sessions, sess.ID)
}

// cancelLocked terminates a session without completion credit. Caller
// holds o.mu.
func (o *orchestrator) cancelLocked(ctx context.Context, sess *liveSession) {
	if sess.Phase.Terminal() {
		return
	}
	sess.Phase = entities.PhaseCancelled

	for _, participantID := range sess.ParticipantIDs() {
		sess.RemoveParticipant(participantID)
		delete(o.byParticipant, participantID)
		o.settleParticipantLocked(participantID)
	}

	slog.Info("session cancelled",
		"session", sess.ID,
		"template", sess.Template.ID,
		"provision_failed", sess.provisionFailed,
	)

	o.teardownLocked(ctx, sess)
	delete(o.sessions, sess.ID)
}

// teardownLocked clears the arena and releases it exactly once. Caller
// holds o.mu.
func (o *orchestrator) teardownLocked(ctx context.Context, sess *liveSession) {
	if sess.Arena == "" || sess.released {
		return
	}
	sess.released = true

	o.actors.RemoveAllForArena(ctx, sess.Arena)
	o.bosses.RemoveAllForArena(ctx, sess.Arena)
	delete(o.byArena, sess.Arena)
	o.releaseArenaAsync(sess.Arena)
}

// releaseArenaAsync hands an arena back to the world provider off the
// caller's goroutine; release can be as slow as allocation
func (o *orchestrator) releaseArenaAsync(arena entities.ArenaHandle) {
	o.provisioning.Add(1)
	go func() {
		defer o.provisioning.Done()
		ctx, cancel := context.WithTimeout(context.Background(), o.provisionTimeout)
		defer cancel()
		if err := o.world.Release(ctx, arena); err != nil {
			slog.Error("failed to release arena", "arena", arena, "error", err)
		}
	}()
}

// settleParticipantLocked enqueues the participant's profile save and
// drops it from the cache. Caller holds o.mu.
func (o *orchestrator) settleParticipantLocked(participantID string) {
	if profile, ok := o.cache[participantID]; ok {
		o.saver.Enqueue(profile)
		delete(o.cache, participantID)
	}
}

// pruneOrderLocked drops finished session IDs from the matching order.
// Caller holds o.mu.
func (o *orchestrator) pruneOrderLocked() {
	if len(o.order) == len(o.sessions) {
		return
	}
	kept := o.order[:0]
	for _, id := range o.order {
		if _, ok := o.sessions[id]; ok {
			kept = append(kept, id)
		}
	}
	o.order = kept
}

// loadProfile returns a profile for requirement evaluation. A cached
// profile is cloned under the lock so the caller never sees the copy the
// scheduler is mutating.
func (o *orchestrator) loadProfile(ctx context.Context, participantID string) (*entities.ParticipantProfile, error) {
	o.mu.RLock()
	cached, ok := o.cache[participantID]
	if ok {
		snapshot := cached.Clone()
		o.mu.RUnlock()
		return snapshot, nil
	}
	o.mu.RUnlock()

	out, err := o.profiles.Get(ctx, profiles.GetInput{ParticipantID: participantID})
	if err != nil {
		if errors.IsNotFound(err) {
			return entities.NewProfile(participantID), nil
		}
		return nil, err
	}
	return out.Profile, nil
}

// cacheProfile stores the profile for the participant's stay in the
// session. Caller holds o.mu.
func (o *orchestrator) cacheProfile(profile *entities.ParticipantProfile) {
	o.cache[profile.ID] = profile
}

// Shutdown cancels every session and flushes profile saves
func (o *orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	for _, id := range o.order {
		if sess, ok := o.sessions[id]; ok {
			o.cancelLocked(ctx, sess)
		}
	}
	o.order = nil
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.provisioning.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return errors.DeadlineExceeded("arena operations still in flight at shutdown deadline")
	}

	return o.saver.Flush(ctx)
}
