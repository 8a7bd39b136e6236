package models

import "time"

// InventoryItem is a single tracked stock record. Ids are opaque strings
// (caller supplied or generated); names are free text and not unique.
type InventoryItem struct {
	ID           string     `gorm:"column:id;primaryKey"`
	ItemName     string     `gorm:"column:item_name;not null"`
	Category     *string    `gorm:"column:category"`
	Quantity     int        `gorm:"column:quantity;not null"`
	ReorderLevel int        `gorm:"column:reorder_level;default:0"`
	Supplier     *string    `gorm:"column:supplier"`
	UnitPrice    float64    `gorm:"column:unit_price;not null"`
	LastUpdated  *time.Time `gorm:"column:last_updated"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}
