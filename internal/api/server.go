// Package api exposes the scheduling services over JSON/HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/samplan/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services are the use cases the router dispatches to.
type Services struct {
	Projects   service.ProjectService
	Status     service.StatusService
	Activities service.ActivityService
	Blockers   service.BlockerService
	Holidays   service.HolidayService
}

// NewRouter builds the chi router with logging, panic recovery, request IDs
// and CORS for allowedOrigins.
func NewRouter(svc Services, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	h := &Handler{svc: svc, logger: logger.With("component", "api")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Delete("/{id}", h.DeleteProject)
			r.Post("/{id}/close", h.CloseProject)
			r.Get("/{id}/schedule", h.GetSchedule)
			r.Get("/{id}/status", h.GetProjectStatus)
			r.Get("/{id}/blockers", h.ListBlockers)
			r.Post("/{id}/blockers", h.OpenBlocker)
		})
		r.Post("/blockers/{id}/resolve", h.ResolveBlocker)
		r.Patch("/activities/{id}", h.UpdateActivity)
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.AddHoliday)
			r.Post("/import", h.ImportHolidays)
			r.Delete("/{date}", h.DeleteHoliday)
		})
		r.Post("/schedule/preview", h.PreviewSchedule)
		r.Get("/status", h.GetStatus)
	})

	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.InfoContext(r.Context(), "request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
