// Package httpapi assembles the chi router for the API surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"autostream/internal/http/handlers"
	"autostream/internal/middleware"
)

// Options carries the router's cross-cutting configuration.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	// UploadsDir, when set, is served read-only under /uploads/.
	UploadsDir string
}

// NewRouter wires every endpoint and the middleware chain.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	// generation endpoints call external services; rate limit them separately
	var limited func(http.Handler) http.Handler
	if opts.RateLimitPerMin > 0 {
		limited = middleware.RateLimit(opts.RateLimitPerMin, time.Minute)
	} else {
		limited = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", app.CreateProject)
			r.Get("/", app.ListProjects)
			r.Post("/{id}/export", app.ExportProject)
		})

		r.Route("/workflow", func(r chi.Router) {
			r.Get("/state", app.WorkflowState)
			r.Get("/progress", app.WorkflowProgress)
			r.Get("/events", app.WorkflowEvents)
			r.Post("/previous", app.WorkflowPrevious)
			r.Post("/reset", app.WorkflowReset)
		})

		r.Route("/trends", func(r chi.Router) {
			r.With(limited).Post("/search", app.SearchTrends)
			r.Post("/select", app.SelectTrend)
		})

		r.Route("/script", func(r chi.Router) {
			r.With(limited).Post("/generate", app.GenerateScript)
			r.Post("/update", app.UpdateScript)
			r.Post("/approve", app.ApproveScript)
		})

		r.Get("/voices", app.ListVoices)
		r.Route("/audio", func(r chi.Router) {
			r.With(limited).Post("/generate", app.GenerateAudio)
			r.Post("/approve", app.ApproveAudio)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Post("/approve", app.ApproveAssets)
			r.Post("/{kind}", app.UploadAsset)
		})

		r.Route("/video", func(r chi.Router) {
			r.With(limited).Post("/generate", app.GenerateVideo)
			r.Post("/approve", app.ApproveVideo)
		})
	})

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
