package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omarvaldez/shopstock-backend/api/controllers"
	"github.com/omarvaldez/shopstock-backend/api/middleware"
	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/db"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
	"github.com/omarvaldez/shopstock-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	inventoryService inventory.Service,
	analyticsService analytics.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/", controllers.InventoryCreate(inventoryService, logg))
		r.Get("/", controllers.InventoryList(inventoryService, logg))
		r.Put("/{itemId}", controllers.InventoryUpdate(inventoryService, logg))
		r.Delete("/{itemId}", controllers.InventoryDelete(inventoryService, logg))
	})

	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Post("/", controllers.SupplierCreate(inventoryService, logg))
		r.Get("/", controllers.SupplierList(inventoryService, logg))
	})

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/count", controllers.AnalyticsCount(analyticsService, logg))
		r.Get("/stock-value", controllers.AnalyticsStockValue(analyticsService, logg))
		r.Get("/top-supplier", controllers.AnalyticsTopSupplier(analyticsService, logg))
		r.Get("/last-updated", controllers.AnalyticsLastUpdated(analyticsService, logg))
		r.Get("/stale", controllers.AnalyticsStale(analyticsService, logg))
		r.Get("/reorder", controllers.AnalyticsReorder(analyticsService, logg))
		r.Get("/category-avg-price", controllers.AnalyticsCategoryAvgPrice(analyticsService, logg))
		r.Get("/supplier-reorder-ratio", controllers.AnalyticsSupplierReorderRatio(analyticsService, logg))
		r.Get("/supplier-category-cost", controllers.AnalyticsSupplierCategoryCost(analyticsService, logg))
		r.Get("/stock", controllers.AnalyticsStockSearch(inventoryService, logg))
	})

	return r
}
