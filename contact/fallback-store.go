package contact

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bmcontractors/backend/logger"
)

// ConnState is the tri-state of the primary-store connection.
// Only Connected makes the primary tier usable.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// reprobeInterval is how often a disconnected store retries the primary
// tier in the background.
const reprobeInterval = 30 * time.Second

// Store unifies the primary document store and the in-process fallback
// list. It decides per call which tier to use and degrades transparently:
// a primary failure is absorbed here, logged at warn, and never surfaces
// to the caller as an error.
type Store struct {
	primary primaryRepo // nil when no primary store is configured
	memory  *inMemRepo
	state   atomic.Int32
}

// NewStore builds a store around the given primary tier. Pass nil to run
// purely in-memory (the store starts disconnected and stays there).
func NewStore(primary primaryRepo) *Store {
	s := &Store{
		primary: primary,
		memory:  newInMemRepo(),
	}
	if primary == nil {
		s.state.Store(int32(StateDisconnected))
	} else {
		s.state.Store(int32(StateConnecting))
	}
	return s
}

func (s *Store) connState() ConnState {
	return ConnState(s.state.Load())
}

func (s *Store) setConnState(state ConnState) {
	s.state.Store(int32(state))
}

// StartProbe resolves the initial connecting state asynchronously and
// keeps re-probing on an interval while disconnected. Returns immediately.
func (s *Store) StartProbe(ctx context.Context) {
	if s.primary == nil {
		return
	}
	go func() {
		s.probe(ctx)
		ticker := time.NewTicker(reprobeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.connState() != StateConnected {
					s.probe(ctx)
				}
			}
		}
	}()
}

func (s *Store) probe(ctx context.Context) {
	log := logger.FromContext(ctx)
	if err := s.primary.Ping(ctx); err != nil {
		s.setConnState(StateDisconnected)
		log.Warn("primary store unreachable, fallback tier active", "error", err)
		return
	}
	s.setConnState(StateConnected)
	log.Info("primary store connected")
}

// Save persists the submission: primary tier when connected, in-memory
// otherwise. A failed primary write marks the store disconnected and
// falls through to memory. The error return exists only for the
// degenerate both-tiers-failed case, which cannot occur with the memory
// tier (append cannot fail); callers may treat Save as infallible.
func (s *Store) Save(ctx context.Context, subm Submission) (StoredSubmission, error) {
	log := logger.FromContext(ctx)

	if s.connState() == StateConnected {
		stored, err := s.primary.Save(ctx, subm)
		if err == nil {
			log.Info("submission persisted", "id", stored.ID, "tier", TierPrimary)
			return StoredSubmission{Subm: stored, Tier: TierPrimary}, nil
		}
		s.setConnState(StateDisconnected)
		log.Warn("primary store write failed, degrading to fallback tier", "error", err)
	}

	stored := s.memory.Save(ctx, subm)
	log.Info("submission persisted", "id", stored.ID, "tier", TierFallback)
	return StoredSubmission{Subm: stored, Tier: TierFallback}, nil
}

// List reads all submissions newest first, tagged with the tier that
// served the read. A failed primary read degrades to the memory tier.
func (s *Store) List(ctx context.Context) ([]Submission, Tier, error) {
	log := logger.FromContext(ctx)

	if s.connState() == StateConnected {
		subms, err := s.primary.List(ctx)
		if err == nil {
			return subms, TierPrimary, nil
		}
		s.setConnState(StateDisconnected)
		log.Warn("primary store read failed, degrading to fallback tier", "error", err)
	}

	return s.memory.List(ctx), TierFallback, nil
}

// UpdateStatus updates one submission's status on whichever tier holds
// it: primary first when connected, then the memory tier, which may hold
// records saved during an outage. Returns (nil, TierFallback, nil) when
// neither tier knows the id.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) (*Submission, Tier, error) {
	log := logger.FromContext(ctx)

	if s.connState() == StateConnected {
		subm, err := s.primary.UpdateStatus(ctx, id, status)
		if err == nil {
			if subm != nil {
				return subm, TierPrimary, nil
			}
		} else {
			s.setConnState(StateDisconnected)
			log.Warn("primary store update failed, degrading to fallback tier", "error", err)
		}
	}

	return s.memory.UpdateStatus(ctx, id, status), TierFallback, nil
}
