package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/omarvaldez/shopstock-backend/api/responses"
	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
)

// AnalyticsCount returns the number of tracked items.
func AnalyticsCount(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"count": count})
	}
}

// AnalyticsStockValue returns the total value of stock on hand.
func AnalyticsStockValue(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.TotalStockValue(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]float64{"total_stock_value": total})
	}
}

// AnalyticsTopSupplier returns the supplier with the most items, or null data
// when no item has a supplier.
func AnalyticsTopSupplier(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top, err := svc.TopSupplier(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, top)
	}
}

// AnalyticsLastUpdated returns the most recently updated item.
func AnalyticsLastUpdated(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := svc.LastUpdatedItem(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, latest)
	}
}

// AnalyticsStale returns items untouched for over the stale window.
func AnalyticsStale(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stale, err := svc.StaleItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stale)
	}
}

// AnalyticsReorder returns items whose quantity sits below the reorder level.
func AnalyticsReorder(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.ItemsNeedingReorder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alerts)
	}
}

// AnalyticsCategoryAvgPrice returns the category with the highest average
// unit price.
func AnalyticsCategoryAvgPrice(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		best, err := svc.HighestAvgPriceCategory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, best)
	}
}

// AnalyticsSupplierReorderRatio returns the supplier closest to its reorder
// levels. An infinite ratio (reorder level zero everywhere) serializes as the
// string "inf".
func AnalyticsSupplierReorderRatio(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lowest, err := svc.LowestReorderRatioSupplier(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if lowest == nil {
			responses.WriteSuccess(w, nil)
			return
		}

		var ratio any = lowest.AvgRatio
		if math.IsInf(lowest.AvgRatio, 1) {
			ratio = "inf"
		}
		responses.WriteSuccess(w, map[string]any{
			"supplier":  lowest.Supplier,
			"avg_ratio": ratio,
		})
	}
}

// AnalyticsSupplierCategoryCost returns the supplier and category pair with
// the highest average unit price.
func AnalyticsSupplierCategoryCost(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		best, err := svc.HighestCategoryCostSupplier(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, best)
	}
}

// AnalyticsStockSearch looks up one item by name substring via ?q=.
func AnalyticsStockSearch(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required"))
			return
		}

		found, err := svc.FindByName(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if found == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"item":     found,
			"in_stock": found.Quantity > 0,
		})
	}
}
