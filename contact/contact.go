package contact

import "time"

// Status of a submission from the admin's point of view.
// There is no state machine; admins may set any of the three values.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusCompleted Status = "completed"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusNew, StatusContacted, StatusCompleted:
		return true
	}
	return false
}

// ServiceCategories is the fixed set of services the contact form offers.
// Comparison is case-sensitive.
var ServiceCategories = []string{
	"Interior Painting",
	"Exterior Painting",
	"Waterproofing",
	"POP Work",
	"Tile Installation",
	"Civil Work",
	"Carpenter Work",
}

func isValidService(s string) bool {
	for _, c := range ServiceCategories {
		if s == c {
			return true
		}
	}
	return false
}

// Submission is the single persisted entity. The id is assigned by
// whichever store tier persisted the record.
type Submission struct {
	ID          string
	Name        string
	Email       string
	Phone       *string
	Service     string
	Message     string
	SubmittedAt time.Time
	Status      Status
}

// Tier identifies which store tier served an operation.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
)

// StoredSubmission is the tagged outcome of a save: the persisted record
// plus the tier that accepted it.
type StoredSubmission struct {
	Subm Submission
	Tier Tier
}
