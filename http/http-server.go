package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/bmcontractors/backend/auth"
	"github.com/bmcontractors/backend/contact"
)

type HttpServer struct {
	contactSrvc *contact.ContactService

	jwtKey         []byte
	adminUsername  string
	adminBcryptPwd string

	router *chi.Mux
	stats  *statsLogger
}

func NewHttpServer(
	contactSrvc *contact.ContactService,
	jwtKey []byte,
	adminUsername string,
	adminBcryptPwd string,
	allowedOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("bmc-backend", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		MessageFieldName: "message",
		Tags: map[string]string{
			"version": "v1.0",
			"env":     "dev",
		},
	})

	stats := newStatsLogger()

	router.Use(httplog.RequestLogger(logger))
	router.Use(stats.middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	server := &HttpServer{
		contactSrvc:    contactSrvc,
		jwtKey:         jwtKey,
		adminUsername:  adminUsername,
		adminBcryptPwd: adminBcryptPwd,
		router:         router,
		stats:          stats,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/api/contact", httpserver.createContact)
	r.Post("/api/auth/login", httpserver.authLogin)
	r.Route("/api/contacts", func(r chi.Router) {
		r.Use(auth.RequireAdmin(httpserver.jwtKey))
		r.Get("/", httpserver.listContacts)
		r.Patch("/{id}/status", httpserver.updateContactStatus)
	})
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// ServeHTTP makes the server usable directly with httptest.
func (httpserver *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpserver.router.ServeHTTP(w, r)
}

// Close releases the server's background resources. Safe to call more
// than once.
func (httpserver *HttpServer) Close() {
	httpserver.stats.close()
}
