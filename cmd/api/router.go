package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/cloudfilestorage/service/internal/config"
	"github.com/cloudfilestorage/service/internal/file"
	"github.com/cloudfilestorage/service/internal/metrics"
	appMiddleware "github.com/cloudfilestorage/service/internal/middleware"

	_ "github.com/cloudfilestorage/service/docs/swagger"
)

func newRouter(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, files *file.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(m.Middleware)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/file-controller", func(r chi.Router) {
		r.Use(chiMiddleware.RequestSize(cfg.MaxUploadSize))
		if cfg.AuthEnabled() {
			r.Use(appMiddleware.RequireUser(cfg.JWTSecret))
		}
		files.Mount(r)
	})

	return r
}
