package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nishantzaveri/jewelbooks-backend/api/controllers"
	"github.com/nishantzaveri/jewelbooks-backend/api/middleware"
	"github.com/nishantzaveri/jewelbooks-backend/internal/estimates"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/metrics"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/redis"
)

// Deps bundles everything the router needs. The metrics registry and redis
// client may be nil in tests; the corresponding middleware degrades to no-ops.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	EstimatesService estimates.Service
	Registry         *prometheus.Registry
	HTTPMetrics      *metrics.HTTPMetrics
	InvoiceMetrics   *metrics.InvoiceMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.VendorContext(logg))
		if deps.Redis != nil {
			policy := middleware.NewRateLimitPolicy(cfg.RateLimit.Window, cfg.RateLimit.VendorLimit)
			r.Use(middleware.RateLimit(policy, deps.Redis, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))
		}

		r.Route("/estimates", func(r chi.Router) {
			r.Post("/", controllers.EstimateCreate(deps.EstimatesService, logg))
			r.Get("/", controllers.EstimateList(deps.EstimatesService, logg))

			r.Route("/{estimateID}", func(r chi.Router) {
				r.Get("/", controllers.EstimateGet(deps.EstimatesService, logg))
				r.Delete("/", controllers.EstimateDelete(deps.EstimatesService, logg))

				r.Post("/items", controllers.LineItemAdd(deps.EstimatesService, logg))
				r.Patch("/items/{itemID}", controllers.LineItemEdit(deps.EstimatesService, logg))
				r.Delete("/items/{index}", controllers.LineItemRemove(deps.EstimatesService, logg))

				r.Put("/pricing", controllers.PricingConfigUpdate(deps.EstimatesService, logg))
				r.Post("/generate", controllers.InvoiceGenerate(deps.EstimatesService, deps.InvoiceMetrics, logg))
			})
		})

		r.Route("/vendor/profile", func(r chi.Router) {
			r.Get("/", controllers.VendorProfileGet(deps.EstimatesService, logg))
			r.Put("/", controllers.VendorProfileUpdate(deps.EstimatesService, logg))
		})
	})

	return r
}
