package types

import (
	"database/sql/driver"
	"encoding/json"
)

// Customer captures the contact snapshot attached to an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Value serializes the customer to JSON.
func (c Customer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan decodes JSONB into the customer struct.
func (c *Customer) Scan(value interface{}) error {
	if value == nil {
		*c = Customer{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, c)
}

// ShippingAddress mirrors the address shape collected by the checkout form.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Value serializes the address to JSON.
func (s ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan decodes JSONB into the address struct.
func (s *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingAddress{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, s)
}
