// internal/core/domain/inventory.go
package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultIDPrefix is used for generated product ids when no prefix is configured.
const DefaultIDPrefix = "PRD"

// Inventory is an insertion-ordered mapping from product id to Item.
// Product ids are unique within one Inventory. Inventory is not safe for
// concurrent use; callers run load/save/mutation on a single thread.
type Inventory struct {
	idPrefix string
	order    []string
	items    map[string]Item
}

// NewInventory creates an empty inventory with the default id prefix.
func NewInventory() *Inventory {
	return NewInventoryWithPrefix(DefaultIDPrefix)
}

// NewInventoryWithPrefix creates an empty inventory whose generated product
// ids take the form <prefix>-<sequence>.
func NewInventoryWithPrefix(prefix string) *Inventory {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &Inventory{
		idPrefix: prefix,
		items:    make(map[string]Item),
	}
}

// IDPrefix returns the prefix used for generated product ids.
func (inv *Inventory) IDPrefix() string {
	return inv.idPrefix
}

// Add validates the item and appends it to the inventory. An empty product
// id is replaced with the next generated <prefix>-<sequence> id. Adding an
// id that already exists fails.
func (inv *Inventory) Add(item Item) (Item, error) {
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	if item.ProductID == "" {
		item.ProductID = inv.NextID()
	}
	if _, exists := inv.items[item.ProductID]; exists {
		return Item{}, fmt.Errorf("duplicate product_id %s", item.ProductID)
	}
	inv.items[item.ProductID] = item
	inv.order = append(inv.order, item.ProductID)
	return item, nil
}

// Update replaces the item stored under id, keeping its position.
// The product id itself is immutable.
func (inv *Inventory) Update(id string, item Item) error {
	if _, exists := inv.items[id]; !exists {
		return fmt.Errorf("product %s not found", id)
	}
	item.ProductID = id
	if err := item.Validate(); err != nil {
		return err
	}
	inv.items[id] = item
	return nil
}

// Delete removes the item stored under id.
func (inv *Inventory) Delete(id string) error {
	if _, exists := inv.items[id]; !exists {
		return fmt.Errorf("product %s not found", id)
	}
	delete(inv.items, id)
	for i, pid := range inv.order {
		if pid == id {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the item stored under id.
func (inv *Inventory) Get(id string) (Item, bool) {
	item, ok := inv.items[id]
	return item, ok
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Items returns all items in insertion order. The returned slice is a copy.
func (inv *Inventory) Items() []Item {
	items := make([]Item, 0, len(inv.order))
	for _, id := range inv.order {
		items = append(items, inv.items[id])
	}
	return items
}

// Search returns items whose name or category contains the query,
// case-insensitively, in insertion order.
func (inv *Inventory) Search(query string) []Item {
	query = strings.ToLower(query)
	var matches []Item
	for _, id := range inv.order {
		item := inv.items[id]
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.CategoryMain), query) ||
			strings.Contains(strings.ToLower(item.CategorySub), query) {
			matches = append(matches, item)
		}
	}
	return matches
}

// LowStock returns items whose quantity is at or below threshold.
func (inv *Inventory) LowStock(threshold int) []Item {
	var low []Item
	for _, id := range inv.order {
		if item := inv.items[id]; item.Quantity <= threshold {
			low = append(low, item)
		}
	}
	return low
}

// TotalValue returns the sum of price*quantity over all items.
func (inv *Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, id := range inv.order {
		item := inv.items[id]
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// NextID returns the next free <prefix>-<sequence> product id. The sequence
// is one past the highest sequence already present under this prefix.
func (inv *Inventory) NextID() string {
	max := 0
	for _, id := range inv.order {
		rest, ok := strings.CutPrefix(id, inv.idPrefix+"-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%04d", inv.idPrefix, max+1)
}

// Equal reports whether both inventories hold the same items with the same
// field values in the same order.
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv.Len() != other.Len() {
		return false
	}
	for i, id := range inv.order {
		if other.order[i] != id {
			return false
		}
		if !inv.items[id].Equal(other.items[id]) {
			return false
		}
	}
	return true
}
