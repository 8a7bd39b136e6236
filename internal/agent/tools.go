package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/omarvaldez/shopstock-backend/pkg/metrics"
	"github.com/omarvaldez/shopstock-backend/pkg/openai"
)

type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type tool struct {
	definition openai.ToolDefinition
	handler    toolHandler
}

// Registry maps tool names the model may call to their executable handlers.
// Handlers return small JSON-serializable values; Execute marshals them so the
// model always sees a JSON string.
type Registry struct {
	tools   map[string]tool
	order   []string
	metrics *metrics.ToolMetrics
}

// NewRegistry wires the full tool surface over the inventory and analytics
// services.
func NewRegistry(inv inventory.Service, stats analytics.Service, toolMetrics *metrics.ToolMetrics) (*Registry, error) {
	if inv == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if stats == nil {
		return nil, fmt.Errorf("analytics service required")
	}

	r := &Registry{tools: map[string]tool{}, metrics: toolMetrics}

	r.register("get_inventory", "List every inventory item, most recently updated first.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return inv.ListAll(ctx)
		})

	r.register("get_items_by_category", "List inventory items in the given category.",
		objectParams(map[string]any{
			"category": map[string]any{"type": "string", "description": "Category name, matched case-insensitively."},
		}, "category"),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Category string `json:"category"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
			items, err := inv.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			matched := make([]inventory.ItemDTO, 0)
			for i := range items {
				if items[i].Category != nil && strings.EqualFold(*items[i].Category, in.Category) {
					matched = append(matched, items[i])
				}
			}
			return matched, nil
		})

	r.register("get_items_needing_reorder", "List items whose quantity is below their reorder level, with the shortage per item.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return stats.ItemsNeedingReorder(ctx)
		})

	r.register("check_item_stock", "Look up one item by name and report its current stock.",
		objectParams(map[string]any{
			"item_name": map[string]any{"type": "string", "description": "Full or partial item name."},
		}, "item_name"),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				ItemName string `json:"item_name"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
			found, err := inv.FindByName(ctx, in.ItemName)
			if err != nil {
				return nil, err
			}
			if found == nil {
				return map[string]any{"found": false, "in_stock": false, "message": fmt.Sprintf("no item matching %q", in.ItemName)}, nil
			}
			return map[string]any{"found": true, "in_stock": found.Quantity > 0, "item": found}, nil
		})

	r.register("update_item_quantity", "Set the stock quantity of an item by name.",
		objectParams(map[string]any{
			"item_name": map[string]any{"type": "string", "description": "Full or partial item name."},
			"quantity":  map[string]any{"type": "integer", "description": "New quantity on hand."},
		}, "item_name", "quantity"),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				ItemName string `json:"item_name"`
				Quantity int    `json:"quantity"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
			item, created, err := inv.SetQuantityByName(ctx, in.ItemName, in.Quantity)
			if err != nil {
				return nil, err
			}
			return map[string]any{"item": item, "created": created}, nil
		})

	r.register("remove_item", "Delete an item from inventory by name.",
		objectParams(map[string]any{
			"item_name": map[string]any{"type": "string", "description": "Full or partial item name."},
		}, "item_name"),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				ItemName string `json:"item_name"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
			removed, err := inv.RemoveByName(ctx, in.ItemName)
			if err != nil {
				return nil, err
			}
			return map[string]any{"removed": removed}, nil
		})

	r.register("add_sample_inventory_data", "Load a small sample inventory for demos. Does nothing if items already exist.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			inserted, err := inv.SeedSampleData(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"inserted": inserted}, nil
		})

	r.register("get_inventory_count", "Count how many distinct items are tracked.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			count, err := stats.Count(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"count": count}, nil
		})

	r.register("get_total_stock_value", "Total value of all stock on hand (quantity times unit price).", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			total, err := stats.TotalStockValue(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"total_stock_value": total}, nil
		})

	r.register("get_top_supplier", "Supplier providing the most items.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			top, err := stats.TopSupplier(ctx)
			if err != nil {
				return nil, err
			}
			if top == nil {
				return map[string]any{"message": "no items have a supplier set"}, nil
			}
			return top, nil
		})

	r.register("get_last_updated_item", "The most recently updated inventory item.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			latest, err := stats.LastUpdatedItem(ctx)
			if err != nil {
				return nil, err
			}
			if latest == nil {
				return map[string]any{"message": "inventory is empty"}, nil
			}
			return latest, nil
		})

	r.register("get_stale_items", "Items not updated in over 180 days, including never-updated ones.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return stats.StaleItems(ctx)
		})

	r.register("get_category_highest_avg_price", "Category with the highest average unit price.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			best, err := stats.HighestAvgPriceCategory(ctx)
			if err != nil {
				return nil, err
			}
			if best == nil {
				return map[string]any{"message": "no items have a category set"}, nil
			}
			return best, nil
		})

	r.register("create_supplier", "Register a supplier with contact details.",
		objectParams(map[string]any{
			"name":           map[string]any{"type": "string", "description": "Supplier name."},
			"contact_person": map[string]any{"type": "string", "description": "Contact person, optional."},
			"phone_number":   map[string]any{"type": "string", "description": "Phone number, optional."},
			"category":       map[string]any{"type": "string", "description": "What the supplier provides, optional."},
			"address":        map[string]any{"type": "string", "description": "Address, optional."},
		}, "name"),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Name          string  `json:"name"`
				ContactPerson *string `json:"contact_person"`
				PhoneNumber   *string `json:"phone_number"`
				Category      *string `json:"category"`
				Address       *string `json:"address"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments: %w", err)
			}
			supplier, err := inv.CreateSupplier(ctx, inventory.SupplierInput{
				Name:          in.Name,
				ContactPerson: in.ContactPerson,
				PhoneNumber:   in.PhoneNumber,
				Category:      in.Category,
				Address:       in.Address,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{"supplier": supplier}, nil
		})

	r.register("get_supplier_lowest_reorder_ratio", "Supplier whose stock sits closest to its reorder levels on average.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			lowest, err := stats.LowestReorderRatioSupplier(ctx)
			if err != nil {
				return nil, err
			}
			if lowest == nil {
				return map[string]any{"message": "no supplier-backed items with stock"}, nil
			}
			// +Inf is not valid JSON; render it as a string.
			var ratio any = lowest.AvgRatio
			if math.IsInf(lowest.AvgRatio, 1) {
				ratio = "inf"
			}
			return map[string]any{"supplier": lowest.Supplier, "avg_ratio": ratio}, nil
		})

	r.register("get_supplier_highest_category_cost", "Supplier and category pair with the highest average unit price.", noParams(),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			best, err := stats.HighestCategoryCostSupplier(ctx)
			if err != nil {
				return nil, err
			}
			if best == nil {
				return map[string]any{"message": "no items have both supplier and category set"}, nil
			}
			return best, nil
		})

	return r, nil
}

func (r *Registry) register(name, description string, parameters map[string]any, handler toolHandler) {
	r.tools[name] = tool{
		definition: openai.ToolDefinition{
			Type: "function",
			Function: openai.FunctionSchema{
				Name:        name,
				Description: description,
				Parameters:  parameters,
			},
		},
		handler: handler,
	}
	r.order = append(r.order, name)
}

// Definitions returns the tool schemas in registration order, ready to send
// with a completion request.
func (r *Registry) Definitions() []openai.ToolDefinition {
	defs := make([]openai.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].definition)
	}
	return defs
}

// Execute runs the named tool and returns its result marshaled as JSON.
func (r *Registry) Execute(ctx context.Context, name string, args string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		r.metrics.IncDispatch(name, "unknown")
		return "", fmt.Errorf("unknown tool %q", name)
	}

	raw := json.RawMessage(args)
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	result, err := t.handler(ctx, raw)
	if err != nil {
		r.metrics.IncDispatch(name, "error")
		return "", fmt.Errorf("tool %s: %w", name, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		r.metrics.IncDispatch(name, "error")
		return "", fmt.Errorf("marshaling %s result: %w", name, err)
	}
	r.metrics.IncDispatch(name, "ok")
	return string(payload), nil
}

func noParams() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func objectParams(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
