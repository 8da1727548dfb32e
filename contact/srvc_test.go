package contact

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bmcontractors/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	notified chan Submission
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{notified: make(chan Submission, 1)}
}

func (n *capturingNotifier) NotifyNewSubmission(ctx context.Context, subm Submission) error {
	n.notified <- subm
	return nil
}

func validSubmitParams() SubmitParams {
	phone := "+919812345678"
	return SubmitParams{
		Name:    "  Jo Doe  ",
		Email:   "Jo@Example.COM",
		Phone:   &phone,
		Service: "Civil Work",
		Message: "please call me back soon",
	}
}

func assertSrvcErrCode(t *testing.T, err error, code string, status int) {
	t.Helper()
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, code, srvcErr.ErrorCode())
	assert.Equal(t, status, srvcErr.HttpStatusCode())
}

func TestSubmitNormalizesAndPersists(t *testing.T) {
	notifier := newCapturingNotifier()
	srvc := NewContactSrvc(NewStore(nil), notifier)

	stored, err := srvc.Submit(context.Background(), validSubmitParams())
	require.NoError(t, err)

	assert.Equal(t, "Jo Doe", stored.Subm.Name, "name is trimmed")
	assert.Equal(t, "jo@example.com", stored.Subm.Email, "email is lowercased")
	assert.Equal(t, TierFallback, stored.Tier)
	assert.NotEmpty(t, stored.Subm.ID)

	select {
	case notified := <-notifier.notified:
		assert.Equal(t, stored.Subm.ID, notified.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("owner notification was not dispatched")
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	srvc := NewContactSrvc(NewStore(nil), nil)

	p := validSubmitParams()
	p.Message = ""
	_, err := srvc.Submit(context.Background(), p)
	assertSrvcErrCode(t, err, ErrCodeMissingRequiredFields, http.StatusBadRequest)
	assert.Equal(t, "Please fill in all required fields.", err.Error())

	subms, _, listErr := srvc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, subms, "rejected submissions must not reach the store")
}

func TestSubmitRejectsBadEmailShape(t *testing.T) {
	srvc := NewContactSrvc(NewStore(nil), nil)

	p := validSubmitParams()
	p.Email = "not-an-email"
	_, err := srvc.Submit(context.Background(), p)
	assertSrvcErrCode(t, err, ErrCodeInvalidEmail, http.StatusBadRequest)
	assert.Equal(t, "Please enter a valid email address.", err.Error())
}

func TestSubmitRejectsRulesetViolations(t *testing.T) {
	srvc := NewContactSrvc(NewStore(nil), nil)

	p := validSubmitParams()
	p.Service = "Plumbing"
	_, err := srvc.Submit(context.Background(), p)
	assertSrvcErrCode(t, err, ErrCodeInvalidFields, http.StatusBadRequest)

	subms, _, listErr := srvc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, subms)
}

func TestSubmitSucceedsWithFailingNotifier(t *testing.T) {
	srvc := NewContactSrvc(NewStore(nil), failingNotifier{})

	stored, err := srvc.Submit(context.Background(), validSubmitParams())
	require.NoError(t, err, "notification failures never fail the request")
	assert.NotEmpty(t, stored.Subm.ID)
}

type failingNotifier struct{}

func (failingNotifier) NotifyNewSubmission(ctx context.Context, subm Submission) error {
	return errors.New("smtp down")
}

func TestUpdateStatusValidation(t *testing.T) {
	srvc := NewContactSrvc(NewStore(nil), nil)
	ctx := context.Background()

	_, err := srvc.UpdateStatus(ctx, "whatever", "archived")
	assertSrvcErrCode(t, err, ErrCodeInvalidStatus, http.StatusBadRequest)

	_, err = srvc.UpdateStatus(ctx, "no-such-id", "contacted")
	assertSrvcErrCode(t, err, ErrCodeSubmissionNotFound, http.StatusNotFound)

	stored, err := srvc.Submit(ctx, validSubmitParams())
	require.NoError(t, err)

	subm, err := srvc.UpdateStatus(ctx, stored.Subm.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, subm.Status)
}
