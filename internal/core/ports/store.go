// internal/core/ports/store.go
package ports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// Format identifies one of the supported on-disk encodings. The format is
// resolved once at the store boundary; codecs never re-dispatch per field.
type Format int

const (
	// FormatAuto lets the store pick the format from the file path.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatCSV
	FormatTXT
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	case FormatTXT:
		return "txt"
	default:
		return "auto"
	}
}

// ParseFormat maps a format name to its Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "txt":
		return FormatTXT, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", s)
	}
}

// FormatForPath infers the save format from the path's extension,
// defaulting to JSON for unrecognized extensions.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	case ".txt":
		return FormatTXT
	default:
		return FormatJSON
	}
}

// RecordError describes one record skipped during a load.
type RecordError struct {
	Path   string `json:"path"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func (e RecordError) String() string {
	return fmt.Sprintf("%s: record %d: %s", e.Path, e.Index, e.Reason)
}

// LoadReport collects per-record validation failures produced alongside a
// successful load. A load succeeds whenever the file is structurally
// decodable; individual malformed records land here instead of failing it.
type LoadReport struct {
	Path    string        `json:"path"`
	Skipped []RecordError `json:"skipped,omitempty"`
}

// Add records one skipped record.
func (r *LoadReport) Add(index int, reason string) {
	r.Skipped = append(r.Skipped, RecordError{Path: r.Path, Index: index, Reason: reason})
}

// Clean reports whether no records were skipped.
func (r *LoadReport) Clean() bool {
	return len(r.Skipped) == 0
}

// InventoryStore is the persistence port for inventories. Implementations
// are synchronous and block until the operation completes.
type InventoryStore interface {
	// Load reads the inventory at path, auto-detecting the format.
	Load(ctx context.Context, path string) (*domain.Inventory, *LoadReport, error)
	// Save writes the inventory to path. FormatAuto infers the format from
	// the path's extension, defaulting to JSON.
	Save(ctx context.Context, inv *domain.Inventory, path string, format Format) error
	// Convert loads src and saves it to dst in the given (or inferred) format.
	Convert(ctx context.Context, src, dst string, format Format) (*LoadReport, error)
	// Snapshot copies the file at path into the snapshot directory with a
	// timestamped name and returns the snapshot path.
	Snapshot(ctx context.Context, path string) (string, error)
}

// RegistryStore is the persistence port for the category registry.
type RegistryStore interface {
	LoadRegistry(ctx context.Context, path string) (*domain.CategoryRegistry, error)
	SaveRegistry(ctx context.Context, reg *domain.CategoryRegistry, path string) error
}
