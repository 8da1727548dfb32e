package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bmcontractors/backend/srvcerror"
)

// JsonResponse is the envelope every endpoint responds with.
type JsonResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Source  string `json:"source,omitempty"` // "primary" or "fallback", list endpoint only
}

func writeJsonSuccessResponse(w http.ResponseWriter, message string, data any) {
	resp := JsonResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeJsonListResponse(w http.ResponseWriter, data any, source string) {
	resp := JsonResponse{
		Success: true,
		Data:    data,
		Source:  source,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeJsonErrorResponse(w http.ResponseWriter, errMsg string, statusCode int) {
	resp := JsonResponse{
		Success: false,
		Message: errMsg,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func writeJsonInternalServerError(w http.ResponseWriter) {
	writeJsonErrorResponse(w,
		srvcerror.ErrInternalSE().Error(),
		http.StatusInternalServerError)
}

func handleJsonSrvcError(logger *slog.Logger, w http.ResponseWriter, err error) {
	srvcErr := &srvcerror.Error{}
	if errors.As(err, &srvcErr) {
		if srvcErr.HttpStatusCode() == http.StatusInternalServerError {
			logger.Error("internal server error", "error", err, "debug", srvcErr.DebugInfo())
		} else {
			logger.Warn("request rejected", "code", srvcErr.ErrorCode(), "error", err)
		}
		writeJsonErrorResponse(w, srvcErr.Error(), srvcErr.HttpStatusCode())
		return
	}
	logger.Error("internal server error", "error", err)
	writeJsonInternalServerError(w)
}
