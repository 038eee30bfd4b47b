package profiles

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hypedmc/dungeon-api/internal/entities"
	"github.com/hypedmc/dungeon-api/internal/errors"
)

const saveTimeout = 5 * time.Second

// AsyncSaver persists profiles off the caller's goroutine so the tick
// loop never blocks on storage. At most one save per participant is in
// flight; while one runs, newer snapshots replace any queued one, so the
// store converges on the latest state without piling up writes.
type AsyncSaver struct {
	repo Repository

	mu       sync.Mutex
	inflight map[string]bool
	pending  map[string]*entities.ParticipantProfile
	wg       sync.WaitGroup
}

// NewAsyncSaver creates an async saver in front of a repository
func NewAsyncSaver(repo Repository) *AsyncSaver {
	return &AsyncSaver{
		repo:     repo,
		inflight: make(map[string]bool),
		pending:  make(map[string]*entities.ParticipantProfile),
	}
}

// Enqueue schedules a save of the profile's current state. The profile
// is cloned immediately, so the caller may keep mutating it.
func (s *AsyncSaver) Enqueue(profile *entities.ParticipantProfile) {
	if profile == nil || profile.ID == "" {
		return
	}
	snapshot := profile.Clone()

	s.mu.Lock()
	if s.inflight[snapshot.ID] {
		s.pending[snapshot.ID] = snapshot
		s.mu.Unlock()
		return
	}
	s.inflight[snapshot.ID] = true
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(snapshot)
}

// run saves the snapshot, then keeps saving whatever newer snapshot
// arrived in the meantime
func (s *AsyncSaver) run(snapshot *entities.ParticipantProfile) {
	defer s.wg.Done()

	id := snapshot.ID
	for snapshot != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		_, err := s.repo.Save(ctx, SaveInput{Profile: snapshot})
		cancel()
		if err != nil {
			slog.Error("async profile save failed",
				"participant", id,
				"error", err,
			)
		}

		s.mu.Lock()
		snapshot = s.pending[id]
		delete(s.pending, id)
		if snapshot == nil {
			delete(s.inflight, id)
		}
		s.mu.Unlock()
	}
}

// Flush blocks until every enqueued save has completed. Called on
// shutdown so no progression is lost.
func (s *AsyncSaver) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.DeadlineExceeded("profile saves still in flight at shutdown deadline")
	}
}
