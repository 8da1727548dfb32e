package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bmcontractors/backend/contact"
	backendhttp "github.com/bmcontractors/backend/http"
)

const (
	testAdminUser = "admin"
	testAdminPwd  = "letmein123"
)

var testJwtKey = []byte("test-jwt-key")

// setupServer builds a server with no primary store configured, i.e. the
// in-memory fallback tier is the only tier.
func setupServer(t *testing.T) *backendhttp.HttpServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPwd), bcrypt.MinCost)
	require.NoError(t, err)

	store := contact.NewStore(nil)
	srvc := contact.NewContactSrvc(store, contact.NoopNotifier{})

	server := backendhttp.NewHttpServer(
		srvc,
		testJwtKey,
		testAdminUser,
		string(hash),
		[]string{"http://localhost:3000"},
	)
	t.Cleanup(server.Close)
	return server
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Source  string          `json:"source"`
}

func doJSON(t *testing.T, server nethttp.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func validBody() map[string]any {
	return map[string]any{
		"name":    "Jo",
		"email":   "jo@x.com",
		"service": "Civil Work",
		"message": "please call me back soon",
	}
}

func TestSubmitContactPrimaryDown(t *testing.T) {
	server := setupServer(t)

	before := time.Now().UTC().Add(-time.Second)
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", validBody(), nil)

	require.Equal(t, nethttp.StatusOK, w.Code, "Response body: %s", w.Body.String())
	assert.True(t, env.Success)

	var data struct {
		ID          string `json:"id"`
		SubmittedAt string `json:"submittedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.ID)

	submittedAt, err := time.Parse(time.RFC3339, data.SubmittedAt)
	require.NoError(t, err, "submittedAt must be ISO-8601")
	assert.True(t, submittedAt.After(before), "submittedAt must be recent")
}

func TestSubmitContactMissingMessage(t *testing.T) {
	server := setupServer(t)

	body := validBody()
	delete(body, "message")
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", body, nil)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Please fill in all required fields.", env.Message)

	assertStoredCount(t, server, 0)
}

func TestSubmitContactBadEmail(t *testing.T) {
	server := setupServer(t)

	body := validBody()
	body["email"] = "not-an-email"
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", body, nil)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Please enter a valid email address.", env.Message)

	assertStoredCount(t, server, 0)
}

func TestSubmitContactServiceNotOffered(t *testing.T) {
	server := setupServer(t)

	body := validBody()
	body["service"] = "Plumbing"
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", body, nil)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "service")

	assertStoredCount(t, server, 0)
}

func TestSubmitContactMalformedJson(t *testing.T) {
	server := setupServer(t)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/contact", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestSubmitContactPanicRecovery(t *testing.T) {
	// A nil store makes the service panic mid-pipeline; the handler must
	// answer with the generic 500 envelope, not crash or leak detail.
	srvc := contact.NewContactSrvc(nil, contact.NoopNotifier{})
	server := backendhttp.NewHttpServer(
		srvc, testJwtKey, testAdminUser, "", []string{"http://localhost:3000"})
	t.Cleanup(server.Close)

	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", validBody(), nil)

	assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t,
		"Sorry, something went wrong on our end. Please try again later.",
		env.Message)
}

func TestServerCloseIsIdempotent(t *testing.T) {
	server := setupServer(t)
	server.Close()
	server.Close()
}

func TestListContactsRequiresAuth(t *testing.T) {
	server := setupServer(t)

	w, _ := doJSON(t, server, nethttp.MethodGet, "/api/contacts", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, server, nethttp.MethodGet, "/api/contacts", nil,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestAdminLoginAndList(t *testing.T) {
	server := setupServer(t)

	// A visitor submits through the public form first.
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", validBody(), nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var submitted struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))

	token := loginAdmin(t, server)

	w, env = doJSON(t, server, nethttp.MethodGet, "/api/contacts", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, nethttp.StatusOK, w.Code, "Response body: %s", w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "fallback", env.Source)

	var contacts []struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, submitted.ID, contacts[0].ID)
	assert.Equal(t, "new", contacts[0].Status)
	assert.Equal(t, "Civil Work", contacts[0].Service)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	server := setupServer(t)

	w, env := doJSON(t, server, nethttp.MethodPost, "/api/auth/login",
		map[string]string{"username": testAdminUser, "password": "wrong"}, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestAdminUpdateStatus(t *testing.T) {
	server := setupServer(t)

	w, env := doJSON(t, server, nethttp.MethodPost, "/api/contact", validBody(), nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var submitted struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))

	token := loginAdmin(t, server)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	w, env = doJSON(t, server, nethttp.MethodPatch,
		"/api/contacts/"+submitted.ID+"/status",
		map[string]string{"status": "contacted"}, authHeader)
	require.Equal(t, nethttp.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var updated struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "contacted", updated.Status)

	w, _ = doJSON(t, server, nethttp.MethodPatch,
		"/api/contacts/"+submitted.ID+"/status",
		map[string]string{"status": "archived"}, authHeader)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	w, _ = doJSON(t, server, nethttp.MethodPatch,
		"/api/contacts/no-such-id/status",
		map[string]string{"status": "contacted"}, authHeader)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
}

func loginAdmin(t *testing.T, server nethttp.Handler) string {
	t.Helper()
	w, env := doJSON(t, server, nethttp.MethodPost, "/api/auth/login",
		map[string]string{"username": testAdminUser, "password": testAdminPwd}, nil)
	require.Equal(t, nethttp.StatusOK, w.Code, "Login failed: %s", w.Body.String())

	var token string
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token)
	return token
}

// assertStoredCount checks the store through the admin API so the test
// observes exactly what an operator would.
func assertStoredCount(t *testing.T, server nethttp.Handler, want int) {
	t.Helper()
	token := loginAdmin(t, server)
	w, env := doJSON(t, server, nethttp.MethodGet, "/api/contacts", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, nethttp.StatusOK, w.Code)

	var contacts []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &contacts))
	assert.Len(t, contacts, want)
}
