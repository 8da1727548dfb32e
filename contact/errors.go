package contact

import (
	"net/http"
	"strings"

	"github.com/bmcontractors/backend/srvcerror"
)

const ErrCodeMissingRequiredFields = "missing_required_fields"

func ErrMissingRequiredFields() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingRequiredFields,
		"Please fill in all required fields.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidEmail = "invalid_email"

func ErrInvalidEmail() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidEmail,
		"Please enter a valid email address.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidFields = "invalid_submission_fields"

func ErrInvalidFields(violations []FieldViolation) *srvcerror.Error {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.String()
	}
	return srvcerror.New(
		ErrCodeInvalidFields,
		"Invalid submission: "+strings.Join(msgs, "; "),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"The requested submission was not found.",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidStatus = "invalid_status"

func ErrInvalidStatus() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidStatus,
		"Status must be one of: new, contacted, completed.",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
