// internal/core/domain/item.go
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item represents a single inventory record.
type Item struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	CategoryMain string          `json:"category_main"`
	CategorySub  string          `json:"category_sub,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
}

// Validate performs domain validation on the item. The product id is not
// required here: an empty id is assigned by Inventory.Add.
func (i *Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required")
	}
	if i.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// Equal reports whether two items carry the same field values.
// Price is compared by numeric value, not by internal representation.
func (i Item) Equal(other Item) bool {
	return i.ProductID == other.ProductID &&
		i.Name == other.Name &&
		i.CategoryMain == other.CategoryMain &&
		i.CategorySub == other.CategorySub &&
		i.Quantity == other.Quantity &&
		i.Price.Equal(other.Price) &&
		i.Description == other.Description
}
