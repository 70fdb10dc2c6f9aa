package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/balanza-erp/balanza/internal/auth"
	ledgerhttp "github.com/balanza-erp/balanza/internal/ledger/http"
	"github.com/balanza-erp/balanza/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger        *slog.Logger
	Config        *Config
	AuthHandler   *auth.Handler
	LedgerHandler *ledgerhttp.Handler
	TokenIssuer   *auth.TokenIssuer
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi.Router. Auth endpoints for obtaining a
// token stay public; everything touching the catalog requires a bearer
// token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(ar chi.Router) {
		params.AuthHandler.MountPublicRoutes(ar)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(params.TokenIssuer))
			params.AuthHandler.MountProtectedRoutes(pr)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(params.TokenIssuer))
		params.LedgerHandler.MountRoutes(pr)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
