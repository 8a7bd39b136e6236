package models

// Supplier is a vendor contact record. It is correlated with
// InventoryItem.Supplier by matching text only, not by key.
type Supplier struct {
	ID            string  `gorm:"column:id;primaryKey"`
	Name          string  `gorm:"column:name;not null"`
	ContactPerson *string `gorm:"column:contact_person"`
	PhoneNumber   *string `gorm:"column:phone_number"`
	Category      *string `gorm:"column:category"`
	Address       *string `gorm:"column:address"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
