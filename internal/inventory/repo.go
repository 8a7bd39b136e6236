package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/omarvaldez/shopstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

const createInventoryTable = `
CREATE TABLE IF NOT EXISTS inventory (
	id TEXT PRIMARY KEY,
	item_name TEXT NOT NULL,
	category TEXT,
	quantity INTEGER NOT NULL,
	reorder_level INTEGER DEFAULT 0,
	supplier TEXT,
	unit_price REAL NOT NULL,
	last_updated TEXT
)`

const createSuppliersTable = `
CREATE TABLE IF NOT EXISTS suppliers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	contact_person TEXT,
	phone_number TEXT,
	category TEXT,
	address TEXT
)`

// Repository handles inventory persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the inventory and supplier tables if absent. It is
// idempotent and safe to run before every operation.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(createInventoryTable).Error; err != nil {
		return fmt.Errorf("creating inventory table: %w", err)
	}
	if err := r.db.WithContext(ctx).Exec(createSuppliersTable).Error; err != nil {
		return fmt.Errorf("creating suppliers table: %w", err)
	}
	return nil
}

// Insert persists a new inventory row, stamping last_updated server-side.
func (r *Repository) Insert(ctx context.Context, item *models.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	now := time.Now().UTC()
	item.LastUpdated = &now
	return r.db.WithContext(ctx).Create(item).Error
}

// Get loads an inventory row by its id.
func (r *Repository) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns all inventory rows ordered by last_updated descending. Rows
// without a timestamp sort last.
func (r *Repository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Order("last_updated IS NULL, last_updated DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces all columns of the row matching item.ID and re-stamps
// last_updated. It reports whether a row was matched.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) (bool, error) {
	if item == nil {
		return false, fmt.Errorf("item is required")
	}
	now := time.Now().UTC()
	item.LastUpdated = &now

	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"item_name":     item.ItemName,
			"category":      item.Category,
			"quantity":      item.Quantity,
			"reorder_level": item.ReorderLevel,
			"supplier":      item.Supplier,
			"unit_price":    item.UnitPrice,
			"last_updated":  item.LastUpdated,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the row with the given id and returns the removed count.
func (r *Repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// InsertSupplier persists a new supplier row.
func (r *Repository) InsertSupplier(ctx context.Context, supplier *models.Supplier) error {
	if supplier == nil {
		return fmt.Errorf("supplier is required")
	}
	return r.db.WithContext(ctx).Create(supplier).Error
}

// ListSuppliers returns all supplier rows.
func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.WithContext(ctx).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}
