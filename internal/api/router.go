package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alumnihub/portal-server/internal/api/handlers"
	"github.com/alumnihub/portal-server/internal/api/middleware"
	"github.com/alumnihub/portal-server/internal/services"
)

// Options configures the router beyond its service dependencies.
type Options struct {
	// ClientKey is the shared credential identifying the front-end app.
	ClientKey string
	// LoginRPS / LoginBurst bound the credential-guessing rate per IP.
	LoginRPS   float64
	LoginBurst int
}

// NewRouter creates and configures a new Chi router.
func NewRouter(authSvc services.AuthServiceProvider, contentSvc services.ContentServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.SessionTokenHeader},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	contentHandler := handlers.NewContentHandler(contentSvc, authSvc)
	adminHandler := handlers.NewAdminHandler(contentSvc)

	loginLimit := middleware.RateLimit(opts.LoginRPS, opts.LoginBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Everything past the health check requires the app credential.
		r.Group(func(r chi.Router) {
			r.Use(middleware.ClientKey(opts.ClientKey))

			r.Route("/auth", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(loginLimit)
					r.Post("/login", authHandler.Login)
					r.Post("/signup", authHandler.Signup)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth(authSvc))
					r.Get("/verify", authHandler.Verify)
					r.Put("/profile", authHandler.UpdateProfile)
					r.Post("/logout", authHandler.Logout)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAuth(authSvc))
				r.Use(middleware.RequireModerator)

				r.Get("/data", adminHandler.Data)
				r.Delete("/{type}/{id}", adminHandler.Delete)

				r.Post("/events", adminHandler.CreateEvent)
				r.Put("/events/{id}", adminHandler.UpdateEvent)
				r.Post("/jobs", adminHandler.CreateJob)
				r.Put("/jobs/{id}", adminHandler.UpdateJob)
				r.Post("/news", adminHandler.CreateNews)
				r.Put("/news/{id}", adminHandler.UpdateNews)
			})

			// Public listings
			r.Get("/events", contentHandler.ListEvents)
			r.Get("/jobs", contentHandler.ListJobs)
			r.Get("/news", contentHandler.ListNews)
			r.Get("/alumni", contentHandler.ListAlumni)
		})
	})

	return r
}
