package contact

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// inMemRepo is the non-durable fallback tier: a process-local ordered
// list guarded by a single mutex. Append cannot fail, which is what lets
// the fallback store promise degradation instead of errors.
type inMemRepo struct {
	mu     sync.RWMutex
	subms  []Submission
	lastID int64
}

func newInMemRepo() *inMemRepo {
	return &inMemRepo{}
}

// Save appends the submission with a synthetic id derived from wall-clock
// time. Ids stay monotonically increasing even when two saves land on the
// same nanosecond.
func (r *inMemRepo) Save(ctx context.Context, subm Submission) Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := time.Now().UnixNano()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	subm.ID = "mem-" + strconv.FormatInt(id, 10)
	subm.SubmittedAt = time.Now().UTC()
	if subm.Status == "" {
		subm.Status = StatusNew
	}

	r.subms = append(r.subms, subm)
	return subm
}

// List returns a copy of the submissions sorted descending by
// submittedAt, matching the primary tier's feed order.
func (r *inMemRepo) List(ctx context.Context) []Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subms := make([]Submission, len(r.subms))
	copy(subms, r.subms)
	sort.SliceStable(subms, func(i, j int) bool {
		return subms[i].SubmittedAt.After(subms[j].SubmittedAt)
	})
	return subms
}

// UpdateStatus sets the status of one submission. Returns nil when the id
// is not present in this tier.
func (r *inMemRepo) UpdateStatus(ctx context.Context, id string, status Status) *Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subms {
		if r.subms[i].ID == id {
			r.subms[i].Status = status
			subm := r.subms[i]
			return &subm
		}
	}
	return nil
}
