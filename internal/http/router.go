// Package httpapi assembles the API router: middleware chain, public
// endpoints, and the authenticated /api subtree.
package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminHandler "govassist/internal/admin/handler"
	applicantHandler "govassist/internal/applicant/handler"
	applicationHandler "govassist/internal/application/handler"
	"govassist/internal/platform/config"
	"govassist/internal/platform/metrics"
	"govassist/internal/platform/postgres"
	platformredis "govassist/internal/platform/redis"
	schemeHandler "govassist/internal/scheme/handler"
	sysconfigHandler "govassist/internal/sysconfig/handler"
	"govassist/pkg/platform/httputil"
	authmw "govassist/pkg/platform/middleware/auth"
	"govassist/pkg/platform/middleware/logging"
	"govassist/pkg/platform/middleware/metadata"
	"govassist/pkg/platform/middleware/recovery"
	"govassist/pkg/platform/middleware/requestid"
	"govassist/pkg/platform/middleware/requesttime"
)

// Handlers groups the per-context HTTP handlers mounted under /api.
type Handlers struct {
	Auth           *adminHandler.Handler
	Applicants     *applicantHandler.Handler
	Schemes        *schemeHandler.Handler
	Applications   *applicationHandler.Handler
	Configurations *sysconfigHandler.Handler
}

// Dependencies carries everything the router needs to assemble the API.
type Dependencies struct {
	Handlers   Handlers
	Validator  authmw.JWTValidator
	Revocation authmw.TokenRevocationChecker
	DB         *sql.DB
	Redis      *platformredis.Client
	Metrics    *metrics.Metrics
	CORS       config.CORSConfig
	Logger     *slog.Logger
}

// NewRouter builds the chi router. Login, health, and metrics are public;
// everything else under /api requires a valid unrevoked bearer token.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.Header},
		ExposedHeaders:   []string{requestid.Header},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(logging.Middleware(deps.Logger))
	r.Use(recovery.Middleware(deps.Logger))
	r.Use(deps.Metrics.Middleware)

	r.Get("/healthz", healthHandler(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		deps.Handlers.Auth.Register(api)

		api.Group(func(protected chi.Router) {
			protected.Use(authmw.RequireAuth(deps.Validator, deps.Revocation, deps.Logger))

			deps.Handlers.Auth.RegisterAuthenticated(protected)
			deps.Handlers.Applicants.Register(protected)
			deps.Handlers.Schemes.Register(protected)
			deps.Handlers.Applications.Register(protected)
			deps.Handlers.Configurations.Register(protected)
		})
	})

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres,omitempty"`
	Redis    string `json:"redis,omitempty"`
}

// healthHandler reports liveness plus the state of each hard dependency.
// A failing dependency turns the overall status degraded with a 503.
func healthHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK

		if deps.DB != nil {
			resp.Postgres = "ok"
			if err := postgres.Health(ctx, deps.DB); err != nil {
				resp.Postgres = "unreachable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		if deps.Redis != nil {
			resp.Redis = "ok"
			if err := deps.Redis.Health(ctx); err != nil {
				resp.Redis = "unreachable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		httputil.WriteJSON(w, status, resp)
	}
}
