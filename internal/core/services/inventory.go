// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mcanavera/stockroom/internal/core/domain"
	"github.com/mcanavera/stockroom/internal/core/ports"
)

// InventoryService is the application service the presentation layer calls.
// It owns the in-memory inventory between an explicit load and an explicit
// save; nothing is persisted automatically. All methods run synchronously on
// the caller's thread.
type InventoryService struct {
	store    ports.InventoryStore
	inv      *domain.Inventory
	idPrefix string
	logger   *slog.Logger
}

// Stats summarizes the current inventory.
type Stats struct {
	TotalItems    int             `json:"total_items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// NewInventoryService creates a service starting from an empty inventory.
func NewInventoryService(store ports.InventoryStore, idPrefix string, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		store:    store,
		inv:      domain.NewInventoryWithPrefix(idPrefix),
		idPrefix: idPrefix,
		logger:   logger.With(slog.String("service", "inventory")),
	}
}

// Load replaces the current inventory with the contents of path. The report
// lists records that were skipped; the presentation layer decides whether to
// surface them.
func (s *InventoryService) Load(ctx context.Context, path string) (*ports.LoadReport, error) {
	inv, report, err := s.store.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	s.inv = inv

	if !report.Clean() {
		s.logger.WarnContext(ctx, "records skipped during load",
			slog.String("path", path),
			slog.Int("skipped", len(report.Skipped)))
	}
	return report, nil
}

// Save persists the current inventory to path.
func (s *InventoryService) Save(ctx context.Context, path string, format ports.Format) error {
	if err := s.store.Save(ctx, s.inv, path, format); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// AddItem validates and adds an item, generating a product id when absent,
// and returns the stored item.
func (s *InventoryService) AddItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	added, err := s.inv.Add(item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.InfoContext(ctx, "added inventory item",
		slog.String("product_id", added.ProductID),
		slog.String("name", added.Name))

	return added, nil
}

// UpdateItem replaces the item stored under id.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, item domain.Item) error {
	if err := s.inv.Update(id, item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.InfoContext(ctx, "updated inventory item",
		slog.String("product_id", id))

	return nil
}

// DeleteItem removes the item stored under id.
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	if err := s.inv.Delete(id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted inventory item",
		slog.String("product_id", id))

	return nil
}

// Item returns the item stored under id.
func (s *InventoryService) Item(id string) (domain.Item, bool) {
	return s.inv.Get(id)
}

// Items returns the current items in insertion order.
func (s *InventoryService) Items() []domain.Item {
	return s.inv.Items()
}

// Search returns items matching the query by name or category.
func (s *InventoryService) Search(query string) []domain.Item {
	return s.inv.Search(query)
}

// LowStock returns items at or below the quantity threshold.
func (s *InventoryService) LowStock(threshold int) []domain.Item {
	return s.inv.LowStock(threshold)
}

// Stats returns totals over the current inventory.
func (s *InventoryService) Stats() Stats {
	totalQuantity := 0
	for _, item := range s.inv.Items() {
		totalQuantity += item.Quantity
	}
	return Stats{
		TotalItems:    s.inv.Len(),
		TotalQuantity: totalQuantity,
		TotalValue:    s.inv.TotalValue(),
	}
}

// Inventory exposes the current inventory, e.g. for the POS bridge.
func (s *InventoryService) Inventory() *domain.Inventory {
	return s.inv
}
