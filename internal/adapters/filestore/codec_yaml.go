// internal/adapters/filestore/codec_yaml.go
package filestore

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// yamlItem mirrors the JSON encoding: a sequence of mappings keyed by the
// item field names, with prices as plain numeric scalars.
type yamlItem struct {
	ProductID    string    `yaml:"product_id"`
	Name         string    `yaml:"name"`
	CategoryMain string    `yaml:"category_main"`
	CategorySub  string    `yaml:"category_sub,omitempty"`
	Quantity     int       `yaml:"quantity"`
	Price        yamlPrice `yaml:"price"`
	Description  string    `yaml:"description,omitempty"`
}

// yamlPrice encodes a decimal as a YAML number instead of letting the
// encoder reflect over decimal.Decimal internals.
type yamlPrice struct {
	decimal.Decimal
}

func (p yamlPrice) MarshalYAML() (any, error) {
	tag := "!!float"
	if p.Decimal.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: p.Decimal.String()}, nil
}

func (p *yamlPrice) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("price %q is not numeric", node.Value)
	}
	p.Decimal = d
	return nil
}

// decodeYAML parses a YAML sequence of item mappings. The top-level document
// must be a sequence; individual elements that fail to decode are skipped.
func decodeYAML(data []byte) ([]rawRecord, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]rawRecord, 0, len(nodes))
	for i := range nodes {
		var row yamlItem
		if err := nodes[i].Decode(&row); err != nil {
			records = append(records, rawRecord{index: i, err: err})
			continue
		}
		records = append(records, rawRecord{index: i, item: domain.Item{
			ProductID:    row.ProductID,
			Name:         row.Name,
			CategoryMain: row.CategoryMain,
			CategorySub:  row.CategorySub,
			Quantity:     row.Quantity,
			Price:        row.Price.Decimal,
			Description:  row.Description,
		}})
	}
	return records, nil
}

func encodeYAML(items []domain.Item) ([]byte, error) {
	rows := make([]yamlItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, yamlItem{
			ProductID:    item.ProductID,
			Name:         item.Name,
			CategoryMain: item.CategoryMain,
			CategorySub:  item.CategorySub,
			Quantity:     item.Quantity,
			Price:        yamlPrice{item.Price},
			Description:  item.Description,
		})
	}
	data, err := yaml.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}
