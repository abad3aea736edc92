package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/milstat-dev/milstat/pkg/usecase"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/units", s.handleUnits)
		r.Get("/timeslots", s.handleTimeSlots)
		r.Get("/grid-layout", s.handleGridLayout)

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleRegister)
		r.Delete("/profile", s.handleUnbind)

		r.Route("/units/{unit}", func(r chi.Router) {
			r.Use(unitCtx)

			r.Get("/roster", s.handleListRoster)
			r.Delete("/roster/{positionKey}", s.handleRemoveRoster)

			r.Get("/reports", s.handleListReports)
			r.Post("/reports", s.handleSaveReport)
			r.Delete("/reports/{id}", s.handleDeleteReport)

			r.Get("/tasks", s.handleListTasks)
			r.Post("/tasks", s.handleDispatch)
			r.Post("/tasks/{id}/toggle", s.handleToggleTask)
			r.Delete("/tasks/{id}", s.handleDeleteTask)

			r.Get("/candidates", s.handleCandidates)
			r.Get("/grid", s.handleGrid)

			r.Post("/reload", s.handleReload)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
