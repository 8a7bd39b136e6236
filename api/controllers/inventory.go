package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omarvaldez/shopstock-backend/api/responses"
	"github.com/omarvaldez/shopstock-backend/api/validators"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
)

// itemRequest is the write payload for inventory items. Quantity and unit
// price are pointers so an explicit zero is distinguishable from an omitted
// field.
type itemRequest struct {
	ID           string   `json:"id" validate:"required"`
	ItemName     string   `json:"item_name" validate:"required"`
	Category     *string  `json:"category,omitempty"`
	Quantity     *int     `json:"quantity" validate:"required"`
	ReorderLevel *int     `json:"reorder_level,omitempty"`
	Supplier     *string  `json:"supplier,omitempty"`
	UnitPrice    *float64 `json:"unit_price" validate:"required"`
}

func (r itemRequest) toInput() inventory.ItemInput {
	input := inventory.ItemInput{
		ID:        r.ID,
		ItemName:  strings.TrimSpace(r.ItemName),
		Category:  r.Category,
		Quantity:  *r.Quantity,
		Supplier:  r.Supplier,
		UnitPrice: *r.UnitPrice,
	}
	if r.ReorderLevel != nil {
		input.ReorderLevel = *r.ReorderLevel
	}
	return input
}

// InventoryCreate inserts a new item, rejecting duplicate ids.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload itemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryUpdate replaces all fields of the item at {itemId}. The path id
// wins over any id in the payload.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload itemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), itemID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete removes the item at {itemId}.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		if err := svc.Delete(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"message": fmt.Sprintf("inventory item %s deleted", itemID),
		})
	}
}

// InventoryList returns every item, most recently updated first.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}
