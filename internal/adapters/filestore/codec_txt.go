// internal/adapters/filestore/codec_txt.go
package filestore

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// DefaultDelimiter separates fields in the delimited TXT format.
const DefaultDelimiter = "|"

// txtFieldCount is the fixed field order of the TXT format:
// product_id|name|category_main|category_sub|quantity|price|description.
const txtFieldCount = 7

// decodeTXT parses the newline-delimited record format, one item per line.
// Blank lines are ignored; lines with the wrong field count or malformed
// numbers fail individually. Record indexes count non-blank lines.
func decodeTXT(data []byte, delimiter string) ([]rawRecord, error) {
	var records []rawRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	index := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, err := txtLineToItem(line, delimiter)
		if err != nil {
			records = append(records, rawRecord{index: index, err: err})
		} else {
			records = append(records, rawRecord{index: index, item: item})
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return records, nil
}

func txtLineToItem(line, delimiter string) (domain.Item, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) != txtFieldCount {
		return domain.Item{}, fmt.Errorf("expected %d fields, got %d", txtFieldCount, len(fields))
	}
	quantity, err := cast.ToIntE(fields[4])
	if err != nil {
		return domain.Item{}, fmt.Errorf("quantity %q is not an integer", fields[4])
	}
	price, err := decimal.NewFromString(fields[5])
	if err != nil {
		return domain.Item{}, fmt.Errorf("price %q is not numeric", fields[5])
	}
	return domain.Item{
		ProductID:    fields[0],
		Name:         fields[1],
		CategoryMain: fields[2],
		CategorySub:  fields[3],
		Quantity:     quantity,
		Price:        price,
		Description:  fields[6],
	}, nil
}

func encodeTXT(items []domain.Item, delimiter string) ([]byte, error) {
	var buf bytes.Buffer
	for _, item := range items {
		fields := []string{
			item.ProductID,
			item.Name,
			item.CategoryMain,
			item.CategorySub,
			cast.ToString(item.Quantity),
			item.Price.String(),
			item.Description,
		}
		for _, f := range fields {
			if strings.Contains(f, delimiter) {
				return nil, fmt.Errorf("field %q contains the delimiter %q", f, delimiter)
			}
		}
		buf.WriteString(strings.Join(fields, delimiter))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
