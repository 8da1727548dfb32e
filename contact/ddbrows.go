package contact

import (
	"fmt"
	"time"
)

// ContactRow is the DynamoDB item shape for a submission.
type ContactRow struct {
	ID string `dynamo:"id,hash"` // partition key

	Name    string  `dynamo:"name"`
	Email   string  `dynamo:"email"`
	Phone   *string `dynamo:"phone"`
	Service string  `dynamo:"service"`
	Message string  `dynamo:"message"`

	Status string `dynamo:"status"` // "new", "contacted", "completed"

	Gsi1Pk      int    `dynamo:"gsi1_pk"` // gsi1pk = 1, constant; feed index sorts by time
	Gsi1SortKey string `dynamo:"gsi1_sk"` // <submitted_at_rfc3339_utc>#<id>

	SubmittedAtRfc3339 string `dynamo:"submitted_at_rfc3339_utc"`
	Version            int64  `dynamo:"version"` // for optimistic locking on status updates
}

func rowFromSubm(subm Submission) ContactRow {
	return ContactRow{
		ID:                 subm.ID,
		Name:               subm.Name,
		Email:              subm.Email,
		Phone:              subm.Phone,
		Service:            subm.Service,
		Message:            subm.Message,
		Status:             string(subm.Status),
		Gsi1Pk:             1,
		Gsi1SortKey:        fmt.Sprintf("%s#%s", subm.SubmittedAt.UTC().Format(time.RFC3339Nano), subm.ID),
		SubmittedAtRfc3339: subm.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}
}

func submFromRow(row ContactRow) (Submission, error) {
	submittedAt, err := time.Parse(time.RFC3339Nano, row.SubmittedAtRfc3339)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to parse submitted_at of row %s: %w", row.ID, err)
	}
	return Submission{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		Service:     row.Service,
		Message:     row.Message,
		SubmittedAt: submittedAt,
		Status:      Status(row.Status),
	}, nil
}
