// internal/adapters/filestore/xlsx.go
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cast"
	"github.com/tealeg/xlsx/v3"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// xlsxHeaders is the column order of the spreadsheet export.
var xlsxHeaders = []string{
	"Product ID", "Name", "Category", "Sub-Category",
	"Quantity", "Price", "Description",
}

// ExportXLSX writes the inventory as a spreadsheet. XLSX is export-only: it
// is not part of format auto-detection and cannot be loaded back.
func (s *FileStore) ExportXLSX(ctx context.Context, inv *domain.Inventory, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return fmt.Errorf("add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range xlsxHeaders {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, item := range inv.Items() {
		row := sheet.AddRow()
		for _, value := range []string{
			item.ProductID,
			item.Name,
			item.CategoryMain,
			item.CategorySub,
			cast.ToString(item.Quantity),
			item.Price.String(),
			item.Description,
		} {
			row.AddCell().Value = value
		}
	}

	for i := range xlsxHeaders {
		sheet.SetColWidth(i+1, i+1, 18)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	if s.opts.BackupEnabled {
		s.backup(ctx, path)
	}
	if err := s.writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "exported inventory spreadsheet",
		slog.String("path", path),
		slog.Int("items", inv.Len()))

	return nil
}
