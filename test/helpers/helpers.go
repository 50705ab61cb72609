// test/helpers/helpers.go
package helpers

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SampleItems returns a fixed set of valid items covering optional-field
// and decimal-price variety.
func SampleItems() []domain.Item {
	return []domain.Item{
		{
			ProductID:    "PRD-0001",
			Name:         "Wireless Mouse",
			CategoryMain: "Electronics",
			CategorySub:  "Peripherals",
			Quantity:     25,
			Price:        decimal.RequireFromString("19.99"),
			Description:  "2.4GHz wireless mouse",
		},
		{
			ProductID:    "PRD-0002",
			Name:         "Desk Lamp",
			CategoryMain: "Home & Garden",
			Quantity:     8,
			Price:        decimal.RequireFromString("34.50"),
		},
		{
			ProductID:    "PRD-0003",
			Name:         "Notebook",
			CategoryMain: "Office Supplies",
			CategorySub:  "Paper",
			Quantity:     120,
			Price:        decimal.RequireFromString("2.5"),
			Description:  "A5 ruled notebook",
		},
	}
}

// SampleInventory returns an inventory populated with SampleItems.
func SampleInventory(t *testing.T) *domain.Inventory {
	t.Helper()

	inv := domain.NewInventory()
	for _, item := range SampleItems() {
		_, err := inv.Add(item)
		require.NoError(t, err)
	}
	return inv
}

// WriteFile writes content into dir under name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
