package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CustomDetail describes one chosen builder option on a custom cart line,
// e.g. {label: "Color", value: "Vibrant Red Metallic", price: 150000}.
type CustomDetail struct {
	Label string          `json:"label"`
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
}

// CustomDetails is the ordered option list marshaled as JSONB.
type CustomDetails []CustomDetail

// Value serializes the details to JSON.
func (c CustomDetails) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan decodes JSONB into the detail slice.
func (c *CustomDetails) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded CustomDetails
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}

// TotalPrice sums the option prices carried by the details.
func (c CustomDetails) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, detail := range c {
		total = total.Add(detail.Price)
	}
	return total
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
