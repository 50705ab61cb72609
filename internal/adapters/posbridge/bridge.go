// internal/adapters/posbridge/bridge.go

// Package posbridge maps inventory items to and from the record shape the
// external point-of-sale system exchanges. The mapping is purely in-memory;
// no network or process boundary is involved.
package posbridge

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// Record is the POS-side product shape. Prices travel as binary floats and
// only the tangible-item subset of fields crosses the bridge; the
// sub-category stays on the inventory side.
type Record struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// ToRecords converts an inventory to POS records in insertion order.
func ToRecords(inv *domain.Inventory) []Record {
	now := time.Now().Format(time.RFC3339)
	items := inv.Items()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, Record{
			ID:          item.ProductID,
			Name:        item.Name,
			Price:       item.Price.InexactFloat64(),
			Stock:       item.Quantity,
			Category:    item.CategoryMain,
			Description: item.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return records
}

// FromRecords builds an inventory from POS records. Records without an id
// get a generated one under the given prefix; a duplicate id fails the
// whole conversion since the POS system is the authority on its own ids.
func FromRecords(records []Record, prefix string) (*domain.Inventory, error) {
	inv := domain.NewInventoryWithPrefix(prefix)
	for i, rec := range records {
		item := domain.Item{
			ProductID:    rec.ID,
			Name:         rec.Name,
			CategoryMain: rec.Category,
			Quantity:     rec.Stock,
			Price:        decimal.NewFromFloat(rec.Price),
			Description:  rec.Description,
		}
		if _, err := inv.Add(item); err != nil {
			return nil, fmt.Errorf("pos record %d: %w", i, err)
		}
	}
	return inv, nil
}
