package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"

	"github.com/bmcontractors/backend/contact"
)

// ContactJson is the wire shape of a submission on the admin endpoints.
type ContactJson struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Service     string  `json:"service"`
	Message     string  `json:"message"`
	SubmittedAt string  `json:"submittedAt"`
	Status      string  `json:"status"`
}

func mapContact(subm contact.Submission) ContactJson {
	return ContactJson{
		ID:          subm.ID,
		Name:        subm.Name,
		Email:       subm.Email,
		Phone:       subm.Phone,
		Service:     subm.Service,
		Message:     subm.Message,
		SubmittedAt: subm.SubmittedAt.UTC().Format(time.RFC3339),
		Status:      string(subm.Status),
	}
}

func (httpserver *HttpServer) listContacts(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	subms, tier, err := httpserver.contactSrvc.List(r.Context())
	if err != nil {
		handleJsonSrvcError(logger, w, err)
		return
	}

	response := make([]ContactJson, len(subms))
	for i, subm := range subms {
		response[i] = mapContact(subm)
	}

	writeJsonListResponse(w, response, string(tier))
}
