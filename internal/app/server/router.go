package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
	"hrpro/internal/platform/config"
	"hrpro/internal/platform/metrics"
	"hrpro/internal/transport/http/api"
	audithandler "hrpro/internal/transport/http/handlers/audit"
	departmentshandler "hrpro/internal/transport/http/handlers/departments"
	employeeshandler "hrpro/internal/transport/http/handlers/employees"
	evaluationshandler "hrpro/internal/transport/http/handlers/evaluations"
	recruitmenthandler "hrpro/internal/transport/http/handlers/recruitment"
	trainingshandler "hrpro/internal/transport/http/handlers/trainings"
	"hrpro/internal/transport/http/middleware"
	"hrpro/internal/transport/http/shared"
)

const ServiceName = "HR Pro API"

// AuditTrail is what the router needs from the audit service.
type AuditTrail interface {
	shared.Auditor
	audithandler.Lister
}

// Deps carries the services the router exposes. Nil services leave their
// routes unregistered.
type Deps struct {
	Employees   *employees.Service
	Departments *departments.Service
	Recruitment *recruitment.Service
	Trainings   *trainings.Service
	Evaluations *evaluations.Service
	Audit       AuditTrail
	Metrics     *metrics.Collector
	Log         zerolog.Logger
	// Ready reports whether backing services accept work.
	Ready func(ctx context.Context) error
	Now   func() time.Time
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func NewRouter(cfg config.Config, deps Deps) http.Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	var auditor shared.Auditor
	if deps.Audit != nil {
		auditor = deps.Audit
	}

	router := chi.NewRouter()
	if cfg.TrustProxy {
		router.Use(chimw.RealIP)
	}
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Log, deps.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(gziphandler.GzipHandler)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	health := func(w http.ResponseWriter, r *http.Request) {
		api.OK(w, healthResponse{
			Status:    "OK",
			Timestamp: deps.Now().UTC().Format(time.RFC3339),
			Service:   ServiceName,
		})
	}
	router.Get("/health", health)

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness check failed")
				api.Fail(w, http.StatusServiceUnavailable, "Base de dados indisponível", "")
				return
			}
		}
		api.OK(w, healthResponse{Status: "READY", Timestamp: deps.Now().UTC().Format(time.RFC3339), Service: ServiceName})
	})

	if cfg.MetricsEnabled && deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Get("/health", health)

		if deps.Employees != nil {
			employeeshandler.NewHandler(deps.Employees, auditor).RegisterRoutes(r)
		}
		if deps.Departments != nil {
			departmentshandler.NewHandler(deps.Departments, auditor).RegisterRoutes(r)
		}
		if deps.Recruitment != nil {
			recruitmenthandler.NewHandler(deps.Recruitment, auditor).RegisterRoutes(r)
		}
		if deps.Trainings != nil {
			trainingshandler.NewHandler(deps.Trainings, auditor).RegisterRoutes(r)
		}
		if deps.Evaluations != nil {
			evaluationshandler.NewHandler(deps.Evaluations, auditor).RegisterRoutes(r)
		}
		if deps.Audit != nil {
			audithandler.NewHandler(deps.Audit).RegisterRoutes(r)
		}
		r.NotFound(api.NotFound)
		r.MethodNotAllowed(api.MethodNotAllowed)
	})

	router.MethodNotAllowed(api.MethodNotAllowed)
	if cfg.FrontendDir != "" {
		router.NotFound(spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"}.ServeHTTP)
	} else {
		router.NotFound(api.NotFound)
	}
	return router
}

// spaHandler serves the built frontend and falls back to its index page
// for client-side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		api.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}
	if err == nil || os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}
	api.NotFound(w, r)
}
