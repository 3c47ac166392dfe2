package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/handler/payment"
	"github.com/zhouzirui/empathic-coach/client/internal/handler/pricing"
	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	middlewarePkg "github.com/zhouzirui/empathic-coach/client/internal/middleware"
	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/api"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
	paymentview "github.com/zhouzirui/empathic-coach/client/internal/view/payment"
	pricingview "github.com/zhouzirui/empathic-coach/client/internal/view/pricing"
	"github.com/zhouzirui/empathic-coach/client/internal/view/web"
	"github.com/zhouzirui/empathic-coach/client/pkg/utils"
)

// healthTimeout bounds the backend probe behind /healthz.
const healthTimeout = 3 * time.Second

// Backend is the part of the API client the companion server calls.
type Backend interface {
	pricingview.Checkouter
	paymentview.Poller
	Health(ctx context.Context) (*api.Health, error)
}

// Dependencies are the collaborators of the companion server.
type Dependencies struct {
	Plans   plan.Store
	Backend Backend
	Profile profile.Profile
	Pages   *web.Renderer
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// AllowOrigins may call the /api routes cross-origin.
	AllowOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger(logger))
	r.Use(middleware.Recoverer)

	pricingHandler := pricing.New(deps.Plans, deps.Backend, deps.Profile, deps.Pages, logger, deps.Metrics)
	paymentHandler := payment.New(deps.Backend, deps.Pages, logger, deps.Metrics)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pricing", http.StatusFound)
	})
	pricingHandler.RegisterRoutes(r)
	paymentHandler.RegisterRoutes(r)

	r.Get("/healthz", handleHealth(deps.Backend, logger))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(sub chi.Router) {
		sub.Use(middlewarePkg.CORS(deps.AllowOrigins))
		pricingHandler.RegisterAPIRoutes(sub)
	})

	return r
}

// handleHealth reports the server as healthy and the backend as reachable or not.
func handleHealth(backend Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		health, err := backend.Health(ctx)
		if err != nil {
			logger.Warn("backend health probe failed", zap.Error(err))
			utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"backend": "unreachable",
			})
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": health.Status,
		})
	}
}
