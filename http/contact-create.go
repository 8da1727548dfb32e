package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"

	"github.com/bmcontractors/backend/contact"
	"github.com/bmcontractors/backend/logger"
)

// createContact is the submission pipeline:
// received -> validated -> persisted -> responded.
func (httpserver *HttpServer) createContact(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx := logger.WithLogger(r.Context(), httplog.LogEntry(r.Context()))
	ctx = logger.WithRequestID(ctx, reqID)
	log := logger.FromContext(ctx)

	// responded guards the recover path: once a response has gone out,
	// a late panic must not trigger a second WriteHeader.
	responded := false
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic in contact submission pipeline",
				"panic", rec, "request_id", reqID)
			if !responded {
				writeJsonInternalServerError(w)
			}
		}
	}()

	type createContactRequest struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   *string `json:"phone"`
		Service string  `json:"service"`
		Message string  `json:"message"`
	}

	var request createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn("malformed contact submission body", "error", err)
		responded = true
		writeJsonErrorResponse(w,
			"Please fill in all required fields.",
			http.StatusBadRequest)
		return
	}

	params := contact.SubmitParams{
		Name:    request.Name,
		Email:   request.Email,
		Phone:   request.Phone,
		Service: request.Service,
		Message: request.Message,
	}

	// Free-text message stays out of the logs.
	log.Info("contact submission received",
		"name", request.Name,
		"email", request.Email,
		"service", request.Service,
		"message", "[redacted]")

	// Cheap upfront checks; reject before the store is ever touched.
	if missing := contact.MissingRequired(params); len(missing) > 0 {
		log.Warn("contact submission missing required fields", "fields", missing)
		responded = true
		writeJsonErrorResponse(w,
			"Please fill in all required fields.",
			http.StatusBadRequest)
		return
	}
	if !contact.LooseEmailOK(params.Email) {
		log.Warn("contact submission email failed shape check", "email", request.Email)
		responded = true
		writeJsonErrorResponse(w,
			"Please enter a valid email address.",
			http.StatusBadRequest)
		return
	}

	stored, err := httpserver.contactSrvc.Submit(ctx, params)
	if err != nil {
		responded = true
		handleJsonSrvcError(log, w, err)
		return
	}

	log.Info("contact submission completed",
		"id", stored.Subm.ID,
		"service", stored.Subm.Service,
		"tier", stored.Tier,
		"duration_ms", time.Since(start).Milliseconds())

	type createContactData struct {
		ID          string `json:"id"`
		SubmittedAt string `json:"submittedAt"`
	}
	responded = true
	writeJsonSuccessResponse(w,
		"Thank you for reaching out. We will get back to you shortly.",
		createContactData{
			ID:          stored.Subm.ID,
			SubmittedAt: stored.Subm.SubmittedAt.UTC().Format(time.RFC3339),
		})
}
