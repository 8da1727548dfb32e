package contact

import (
	"context"
	"time"

	"github.com/bmcontractors/backend/logger"
)

// notifyTimeout bounds the fire-and-forget notification dispatch.
const notifyTimeout = 10 * time.Second

// ContactService is the domain service behind the public contact form and
// the admin endpoints. It owns validation and delegates persistence to
// the fallback store.
type ContactService struct {
	store    *Store
	notifier Notifier
}

func NewContactSrvc(store *Store, notifier Notifier) *ContactService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ContactService{
		store:    store,
		notifier: notifier,
	}
}

// Submit runs the full validation ruleset, persists the submission and
// dispatches the owner notification. All rule violations are collected
// before any store interaction; nothing reaches a store tier unvalidated.
func (s *ContactService) Submit(ctx context.Context, p SubmitParams) (*StoredSubmission, error) {
	if missing := MissingRequired(p); len(missing) > 0 {
		return nil, ErrMissingRequiredFields()
	}
	if !LooseEmailOK(p.Email) {
		return nil, ErrInvalidEmail()
	}
	if violations := Validate(p); len(violations) > 0 {
		return nil, ErrInvalidFields(violations)
	}

	stored, err := s.store.Save(ctx, normalize(p))
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	s.dispatchNotification(ctx, stored.Subm)

	return &stored, nil
}

// dispatchNotification notifies the site owner in the background. The
// visitor's request never waits on, or fails because of, the mailer.
func (s *ContactService) dispatchNotification(ctx context.Context, subm Submission) {
	log := logger.FromContext(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyNewSubmission(ctx, subm); err != nil {
			log.Warn("failed to dispatch owner notification", "subm_id", subm.ID, "error", err)
		}
	}()
}

// List returns all submissions newest first, with the tier that served
// the read.
func (s *ContactService) List(ctx context.Context) ([]Submission, Tier, error) {
	subms, tier, err := s.store.List(ctx)
	if err != nil {
		return nil, tier, ErrInternalSE().SetDebug(err)
	}
	return subms, tier, nil
}

// UpdateStatus sets the status of one submission.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status string) (*Submission, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus()
	}

	subm, _, err := s.store.UpdateStatus(ctx, id, Status(status))
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	if subm == nil {
		return nil, ErrSubmissionNotFound()
	}
	return subm, nil
}
