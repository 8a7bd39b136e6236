package inventory

import (
	"time"

	"github.com/omarvaldez/shopstock-backend/pkg/db/models"
)

// ItemDTO is the serializable shape of an inventory record.
type ItemDTO struct {
	ID           string     `json:"id"`
	ItemName     string     `json:"item_name"`
	Category     *string    `json:"category,omitempty"`
	Quantity     int        `json:"quantity"`
	ReorderLevel int        `json:"reorder_level"`
	Supplier     *string    `json:"supplier,omitempty"`
	UnitPrice    float64    `json:"unit_price"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

// ItemInput captures the caller-provided fields for create/update. The store
// stamps last_updated itself, so no timestamp is accepted here.
type ItemInput struct {
	ID           string
	ItemName     string
	Category     *string
	Quantity     int
	ReorderLevel int
	Supplier     *string
	UnitPrice    float64
}

func (in ItemInput) toModel() *models.InventoryItem {
	return &models.InventoryItem{
		ID:           in.ID,
		ItemName:     in.ItemName,
		Category:     in.Category,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		Supplier:     in.Supplier,
		UnitPrice:    in.UnitPrice,
	}
}

// FromModel maps a stored row to its DTO.
func FromModel(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:           item.ID,
		ItemName:     item.ItemName,
		Category:     item.Category,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		Supplier:     item.Supplier,
		UnitPrice:    item.UnitPrice,
		LastUpdated:  item.LastUpdated,
	}
}

// SupplierDTO is the serializable shape of a supplier record.
type SupplierDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Category      *string `json:"category,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// SupplierInput captures the caller-provided fields for supplier creation.
type SupplierInput struct {
	ID            string
	Name          string
	ContactPerson *string
	PhoneNumber   *string
	Category      *string
	Address       *string
}

func (in SupplierInput) toModel() *models.Supplier {
	return &models.Supplier{
		ID:            in.ID,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		PhoneNumber:   in.PhoneNumber,
		Category:      in.Category,
		Address:       in.Address,
	}
}

// SupplierFromModel maps a stored supplier row to its DTO.
func SupplierFromModel(supplier *models.Supplier) *SupplierDTO {
	if supplier == nil {
		return nil
	}
	return &SupplierDTO{
		ID:            supplier.ID,
		Name:          supplier.Name,
		ContactPerson: supplier.ContactPerson,
		PhoneNumber:   supplier.PhoneNumber,
		Category:      supplier.Category,
		Address:       supplier.Address,
	}
}
