// internal/adapters/filestore/codec_csv.go
package filestore

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// csvRow keeps every column as a string so that a single row with a
// malformed number fails that row only, not the whole file. CSV carries no
// type information; numeric fields are re-parsed on load.
type csvRow struct {
	ProductID    string `csv:"product_id"`
	Name         string `csv:"name"`
	CategoryMain string `csv:"category_main"`
	CategorySub  string `csv:"category_sub"`
	Quantity     string `csv:"quantity"`
	Price        string `csv:"price"`
	Description  string `csv:"description"`
}

// decodeCSV parses a CSV file with a header row of field names. A missing
// header or structurally broken CSV is a whole-file decode failure.
func decodeCSV(data []byte) ([]rawRecord, error) {
	var rows []csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]rawRecord, 0, len(rows))
	for i, row := range rows {
		item, err := csvRowToItem(row)
		if err != nil {
			records = append(records, rawRecord{index: i, err: err})
			continue
		}
		records = append(records, rawRecord{index: i, item: item})
	}
	return records, nil
}

func csvRowToItem(row csvRow) (domain.Item, error) {
	quantity, err := cast.ToIntE(row.Quantity)
	if err != nil {
		return domain.Item{}, fmt.Errorf("quantity %q is not an integer", row.Quantity)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return domain.Item{}, fmt.Errorf("price %q is not numeric", row.Price)
	}
	return domain.Item{
		ProductID:    row.ProductID,
		Name:         row.Name,
		CategoryMain: row.CategoryMain,
		CategorySub:  row.CategorySub,
		Quantity:     quantity,
		Price:        price,
		Description:  row.Description,
	}, nil
}

func encodeCSV(items []domain.Item) ([]byte, error) {
	rows := make([]csvRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, csvRow{
			ProductID:    item.ProductID,
			Name:         item.Name,
			CategoryMain: item.CategoryMain,
			CategorySub:  item.CategorySub,
			Quantity:     cast.ToString(item.Quantity),
			Price:        item.Price.String(),
			Description:  item.Description,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}
