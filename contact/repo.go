package contact

import "context"

// primaryRepo is the durable document-store tier. The fallback store is
// the only caller; degradation policy lives there, not here, so every
// method reports failure plainly.
type primaryRepo interface {
	Save(ctx context.Context, subm Submission) (Submission, error)
	List(ctx context.Context) ([]Submission, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Submission, error)
	Ping(ctx context.Context) error
}
