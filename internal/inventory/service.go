package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/db/models"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
	"gorm.io/gorm"
)

type itemRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, item *models.InventoryItem) error
	Get(ctx context.Context, id string) (*models.InventoryItem, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
	InsertSupplier(ctx context.Context, supplier *models.Supplier) error
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

// Service exposes inventory operations with existence checks and uniform
// coded errors. Every operation runs the schema bootstrap first; the check is
// idempotent and replaces a separate initialization phase.
type Service interface {
	Create(ctx context.Context, input ItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id string, input ItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]ItemDTO, error)
	FindByName(ctx context.Context, query string) (*ItemDTO, error)
	SetQuantityByName(ctx context.Context, name string, quantity int) (*ItemDTO, bool, error)
	RemoveByName(ctx context.Context, name string) (*ItemDTO, error)
	SeedSampleData(ctx context.Context) (int, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*SupplierDTO, error)
	ListSuppliers(ctx context.Context) ([]SupplierDTO, error)
}

type service struct {
	repo       itemRepository
	autoCreate bool
}

// NewService builds an inventory service with the provided repository.
func NewService(repo itemRepository, flags config.FeatureFlagsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{
		repo:       repo,
		autoCreate: flags.AutoCreateOnSet,
	}, nil
}

func (s *service) ensureSchema(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure schema")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	if input.ID == "" {
		input.ID = uuid.NewString()
	}

	existing, err := s.repo.Get(ctx, input.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing item")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "inventory item already exists")
	}

	item := input.toModel()
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert item")
	}
	return FromModel(item), nil
}

func (s *service) Update(ctx context.Context, id string, input ItemInput) (*ItemDTO, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	// The keyed id wins over any id embedded in the payload.
	item := input.toModel()
	item.ID = id

	matched, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to update")
	}
	return FromModel(item), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to delete")
	}
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]ItemDTO, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos, nil
}

// FindByName returns the first item whose name contains the query,
// case-insensitively, in list order. A nil result without error means no match;
// absence is not an error on this read path.
func (s *service) FindByName(ctx context.Context, query string) (*ItemDTO, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].ItemName), needle) {
			return &items[i], nil
		}
	}
	return nil, nil
}

// SetQuantityByName updates the quantity of the first name match. When nothing
// matches, the auto-create flag decides between creating a default item
// (legacy behavior) and reporting not-found. The second return reports whether
// a new item was created.
func (s *service) SetQuantityByName(ctx context.Context, name string, quantity int) (*ItemDTO, bool, error) {
	found, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}

	if found == nil {
		if !s.autoCreate {
			return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to update")
		}
		created, err := s.Create(ctx, ItemInput{
			ItemName: name,
			Quantity: quantity,
		})
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	updated, err := s.Update(ctx, found.ID, ItemInput{
		ItemName:     found.ItemName,
		Category:     found.Category,
		Quantity:     quantity,
		ReorderLevel: found.ReorderLevel,
		Supplier:     found.Supplier,
		UnitPrice:    found.UnitPrice,
	})
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// RemoveByName deletes the first name match and returns the removed item.
func (s *service) RemoveByName(ctx context.Context, name string) (*ItemDTO, error) {
	found, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to delete")
	}
	if err := s.Delete(ctx, found.ID); err != nil {
		return nil, err
	}
	return found, nil
}

var sampleItems = []ItemInput{
	{ItemName: "Air Filter", Category: strPtr("Spare Parts"), Quantity: 15, ReorderLevel: 5, Supplier: strPtr("AutoParts Direct"), UnitPrice: 12.50},
	{ItemName: "Brake Pads", Category: strPtr("Spare Parts"), Quantity: 8, ReorderLevel: 10, Supplier: strPtr("AutoParts Direct"), UnitPrice: 34.99},
	{ItemName: "Engine Oil 5W-30", Category: strPtr("Fluids"), Quantity: 40, ReorderLevel: 12, Supplier: strPtr("LubriMax"), UnitPrice: 8.75},
	{ItemName: "Torque Wrench", Category: strPtr("Tools"), Quantity: 3, ReorderLevel: 2, Supplier: strPtr("ToolHouse"), UnitPrice: 89.00},
	{ItemName: "Spark Plugs", Category: strPtr("Spare Parts"), Quantity: 25, ReorderLevel: 15, Supplier: strPtr("IgnitionPro"), UnitPrice: 6.20},
	{ItemName: "Coolant", Category: strPtr("Fluids"), Quantity: 0, ReorderLevel: 6, Supplier: strPtr("LubriMax"), UnitPrice: 11.30},
}

// SeedSampleData inserts a small sample inventory for demos. It is a no-op
// when items already exist.
func (s *service) SeedSampleData(ctx context.Context) (int, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) > 0 {
		return 0, nil
	}

	inserted := 0
	for _, input := range sampleItems {
		if _, err := s.Create(ctx, input); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (s *service) CreateSupplier(ctx context.Context, input SupplierInput) (*SupplierDTO, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	if input.ID == "" {
		input.ID = uuid.NewString()
	}

	supplier := input.toModel()
	if err := s.repo.InsertSupplier(ctx, supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert supplier")
	}
	return SupplierFromModel(supplier), nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]SupplierDTO, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}

	dtos := make([]SupplierDTO, 0, len(suppliers))
	for i := range suppliers {
		dtos = append(dtos, *SupplierFromModel(&suppliers[i]))
	}
	return dtos, nil
}

func strPtr(s string) *string { return &s }
