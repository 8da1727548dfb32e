package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	id := chi.URLParam(r, "id")

	type updateStatusRequest struct {
		Status string `json:"status"`
	}

	var request updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJsonErrorResponse(w,
			"Status must be one of: new, contacted, completed.",
			http.StatusBadRequest)
		return
	}

	subm, err := httpserver.contactSrvc.UpdateStatus(r.Context(), id, request.Status)
	if err != nil {
		handleJsonSrvcError(logger, w, err)
		return
	}

	logger.Info("contact status updated", "id", id, "status", request.Status)

	writeJsonSuccessResponse(w, "Status updated.", mapContact(*subm))
}
