// internal/adapters/filestore/codec_json.go
package filestore

import (
	"encoding/json"
	"fmt"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// rawRecord is one decoded record before shape validation. A non-nil err
// marks a record the codec itself could not decode; such records are skipped
// into the LoadReport by the store.
type rawRecord struct {
	index int
	item  domain.Item
	err   error
}

// decodeJSON parses a JSON array of item objects. A malformed top-level
// document is a whole-file decode failure; a malformed element only fails
// that element.
func decodeJSON(data []byte) ([]rawRecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]rawRecord, 0, len(elems))
	for i, raw := range elems {
		var item domain.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			records = append(records, rawRecord{index: i, err: err})
			continue
		}
		records = append(records, rawRecord{index: i, item: item})
	}
	return records, nil
}

func encodeJSON(items []domain.Item) ([]byte, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return append(data, '\n'), nil
}
