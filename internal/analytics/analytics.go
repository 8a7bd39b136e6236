package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/shopspring/decimal"
)

// staleAfter is the age past which an item counts as stale.
const staleAfter = 180 * 24 * time.Hour

// neverUpdated is reported for items that carry no timestamp at all.
const neverUpdated = "Never"

type itemLister interface {
	ListAll(ctx context.Context) ([]inventory.ItemDTO, error)
}

// Service computes read-only aggregations over the full inventory snapshot.
// Every method fetches the current list and reduces it in memory; results are
// not transactional with respect to concurrent writes. Absence of qualifying
// data is a nil/empty result, never an error.
type Service interface {
	Count(ctx context.Context) (int, error)
	TotalStockValue(ctx context.Context) (float64, error)
	TopSupplier(ctx context.Context) (*SupplierCount, error)
	LastUpdatedItem(ctx context.Context) (*inventory.ItemDTO, error)
	StaleItems(ctx context.Context) ([]StaleItem, error)
	HighestAvgPriceCategory(ctx context.Context) (*CategoryAverage, error)
	ItemsNeedingReorder(ctx context.Context) ([]ReorderAlert, error)
	LowestReorderRatioSupplier(ctx context.Context) (*SupplierRatio, error)
	HighestCategoryCostSupplier(ctx context.Context) (*SupplierCategoryCost, error)
}

type service struct {
	items itemLister
}

// NewService builds an analytics service over the provided item source.
func NewService(items itemLister) (Service, error) {
	if items == nil {
		return nil, fmt.Errorf("item lister required")
	}
	return &service{items: items}, nil
}

// SupplierCount names a supplier and how many items it supplies.
type SupplierCount struct {
	Supplier  string `json:"supplier"`
	ItemCount int    `json:"item_count"`
}

// StaleItem is an item not updated within the stale window.
type StaleItem struct {
	ID          string `json:"id"`
	ItemName    string `json:"item_name"`
	LastUpdated string `json:"last_updated"`
}

// CategoryAverage names a category and its average unit price.
type CategoryAverage struct {
	Category     string  `json:"category"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
}

// ReorderAlert flags an item below its reorder level.
type ReorderAlert struct {
	ID           string `json:"id"`
	ItemName     string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
	Shortage     int    `json:"shortage"`
}

// SupplierRatio names a supplier and its average quantity/reorder-level ratio.
type SupplierRatio struct {
	Supplier string  `json:"supplier"`
	AvgRatio float64 `json:"avg_ratio"`
}

// SupplierCategoryCost names the supplier+category pair and its average price.
type SupplierCategoryCost struct {
	Supplier     string  `json:"supplier"`
	Category     string  `json:"category"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
}

func (s *service) Count(ctx context.Context) (int, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// TotalStockValue sums quantity times unit price over all items, rounded to two
// decimals. Decimal math keeps float noise out of money totals.
func (s *service) TotalStockValue(ctx context.Context) (float64, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	total := decimal.Zero
	for i := range items {
		line := decimal.NewFromFloat(items[i].UnitPrice).
			Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64(), nil
}

// TopSupplier returns the supplier with the most items. On a tie the supplier
// encountered first in list order wins; nil when no item names a supplier.
func (s *service) TopSupplier(ctx context.Context) (*SupplierCount, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	for i := range items {
		if items[i].Supplier == nil {
			continue
		}
		supplier := *items[i].Supplier
		if _, seen := counts[supplier]; !seen {
			order = append(order, supplier)
		}
		counts[supplier]++
	}

	var best *SupplierCount
	for _, supplier := range order {
		if best == nil || counts[supplier] > best.ItemCount {
			best = &SupplierCount{Supplier: supplier, ItemCount: counts[supplier]}
		}
	}
	return best, nil
}

// LastUpdatedItem returns the item with the newest timestamp; items without
// one are treated as oldest. Nil when the inventory is empty.
func (s *service) LastUpdatedItem(ctx context.Context) (*inventory.ItemDTO, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var best *inventory.ItemDTO
	for i := range items {
		if best == nil || newerThan(&items[i], best) {
			best = &items[i]
		}
	}
	return best, nil
}

func newerThan(a, b *inventory.ItemDTO) bool {
	if a.LastUpdated == nil {
		return false
	}
	if b.LastUpdated == nil {
		return true
	}
	return a.LastUpdated.After(*b.LastUpdated)
}

// StaleItems lists items whose timestamp is absent or older than the stale
// window; absent timestamps are reported as "Never".
func (s *service) StaleItems(ctx context.Context) ([]StaleItem, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-staleAfter)
	stale := make([]StaleItem, 0)
	for i := range items {
		item := &items[i]
		switch {
		case item.LastUpdated == nil:
			stale = append(stale, StaleItem{ID: item.ID, ItemName: item.ItemName, LastUpdated: neverUpdated})
		case item.LastUpdated.Before(cutoff):
			stale = append(stale, StaleItem{ID: item.ID, ItemName: item.ItemName, LastUpdated: item.LastUpdated.Format(time.RFC3339)})
		}
	}
	return stale, nil
}

// HighestAvgPriceCategory groups items by their raw category value and returns
// the category with the highest average unit price. Ties resolve to the
// category seen first; nil when no item has a category.
func (s *service) HighestAvgPriceCategory(ctx context.Context) (*CategoryAverage, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string
	for i := range items {
		if items[i].Category == nil {
			continue
		}
		category := *items[i].Category
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		sums[category] += items[i].UnitPrice
		counts[category]++
	}

	var best *CategoryAverage
	for _, category := range order {
		avg := sums[category] / float64(counts[category])
		if best == nil || avg > best.AvgUnitPrice {
			best = &CategoryAverage{Category: category, AvgUnitPrice: avg}
		}
	}
	return best, nil
}

// ItemsNeedingReorder lists items whose quantity fell below the reorder level,
// with shortage = reorder_level - quantity.
func (s *service) ItemsNeedingReorder(ctx context.Context) ([]ReorderAlert, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]ReorderAlert, 0)
	for i := range items {
		item := &items[i]
		if item.Quantity < item.ReorderLevel {
			alerts = append(alerts, ReorderAlert{
				ID:           item.ID,
				ItemName:     item.ItemName,
				Quantity:     item.Quantity,
				ReorderLevel: item.ReorderLevel,
				Shortage:     item.ReorderLevel - item.Quantity,
			})
		}
	}
	return alerts, nil
}

// LowestReorderRatioSupplier averages quantity/reorder_level per supplier over
// items with a supplier and positive quantity (a zero reorder level counts as
// an infinite ratio) and returns the supplier with the lowest average. Ties
// resolve to the supplier seen first; nil when no item qualifies.
func (s *service) LowestReorderRatioSupplier(ctx context.Context) (*SupplierRatio, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string
	for i := range items {
		item := &items[i]
		if item.Supplier == nil || item.Quantity <= 0 {
			continue
		}
		ratio := math.Inf(1)
		if item.ReorderLevel != 0 {
			ratio = float64(item.Quantity) / float64(item.ReorderLevel)
		}
		supplier := *item.Supplier
		if _, seen := counts[supplier]; !seen {
			order = append(order, supplier)
		}
		sums[supplier] += ratio
		counts[supplier]++
	}

	var best *SupplierRatio
	for _, supplier := range order {
		avg := sums[supplier] / float64(counts[supplier])
		if best == nil || avg < best.AvgRatio {
			best = &SupplierRatio{Supplier: supplier, AvgRatio: avg}
		}
	}
	return best, nil
}

// HighestCategoryCostSupplier groups items by the raw (supplier, category)
// pair, averages unit price per pair, and returns the pair with the highest
// average. Ties resolve to the pair seen first; nil when no item has both
// fields set.
func (s *service) HighestCategoryCostSupplier(ctx context.Context) (*SupplierCategoryCost, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type pair struct {
		supplier string
		category string
	}
	sums := map[pair]float64{}
	counts := map[pair]int{}
	var order []pair
	for i := range items {
		item := &items[i]
		if item.Supplier == nil || item.Category == nil {
			continue
		}
		key := pair{supplier: *item.Supplier, category: *item.Category}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		sums[key] += item.UnitPrice
		counts[key]++
	}

	var best *SupplierCategoryCost
	for _, key := range order {
		avg := sums[key] / float64(counts[key])
		if best == nil || avg > best.AvgUnitPrice {
			best = &SupplierCategoryCost{Supplier: key.supplier, Category: key.category, AvgUnitPrice: avg}
		}
	}
	return best, nil
}
