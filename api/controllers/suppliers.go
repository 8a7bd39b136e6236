package controllers

import (
	"net/http"
	"strings"

	"github.com/omarvaldez/shopstock-backend/api/responses"
	"github.com/omarvaldez/shopstock-backend/api/validators"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
)

type supplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson *string `json:"contact_person,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Category      *string `json:"category,omitempty"`
	Address       *string `json:"address,omitempty"`
}

func (r supplierRequest) toInput() inventory.SupplierInput {
	return inventory.SupplierInput{
		Name:          strings.TrimSpace(r.Name),
		ContactPerson: r.ContactPerson,
		PhoneNumber:   r.PhoneNumber,
		Category:      r.Category,
		Address:       r.Address,
	}
}

// SupplierCreate registers a supplier.
func SupplierCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload supplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.CreateSupplier(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// SupplierList returns every registered supplier.
func SupplierList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, suppliers)
	}
}
