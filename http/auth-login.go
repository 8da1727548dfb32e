package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/bmcontractors/backend/auth"
)

func (httpserver *HttpServer) authLogin(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	logger.Info("received admin login request", "username", request.Username)

	usernameOK := subtle.ConstantTimeCompare(
		[]byte(request.Username), []byte(httpserver.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(
		[]byte(httpserver.adminBcryptPwd), []byte(request.Password))
	if !usernameOK || passwordErr != nil {
		logger.Warn("admin login rejected", "username", request.Username)
		writeJsonErrorResponse(w,
			"Invalid username or password.",
			http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAdminJWT(request.Username, httpserver.jwtKey)
	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		writeJsonInternalServerError(w)
		return
	}

	writeJsonSuccessResponse(w, "", token)
}
