package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.createProfile)
			r.Get("/", s.listProfiles)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", s.getProfile)
				r.Put("/", s.updateProfile)
				r.Delete("/", s.deleteProfile)
				r.Get("/assessments", s.listAssessments)
				r.Put("/assessments", s.putAssessment)
			})
		})

		r.Route("/gap-analyses", func(r chi.Router) {
			r.Post("/", s.generateGapAnalysis)
			r.Get("/", s.listGapAnalyses)
			r.Get("/{analysisID}", s.getGapAnalysis)
		})

		r.Post("/priority-matrix", s.generatePriorityMatrix)
		r.Post("/action-plan", s.generatePlan)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK")) //nolint:errcheck // health probe response
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
