package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCustomDetailsScanValueRoundTrip(t *testing.T) {
	t.Parallel()

	details := CustomDetails{
		{Label: "Color", Value: "Vibrant Red Metallic", Price: decimal.NewFromInt(150000)},
		{Label: "Exterior", Value: "Carbon Spoiler", Price: decimal.NewFromInt(20000)},
	}

	raw, err := details.Value()
	if err != nil {
		t.Fatalf("unexpected Value error: %v", err)
	}

	var decoded CustomDetails
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("unexpected Scan error: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 details, got %d", len(decoded))
	}
	if decoded[0].Value != "Vibrant Red Metallic" {
		t.Fatalf("order must be preserved, got %q first", decoded[0].Value)
	}
}

func TestCustomDetailsTotalPrice(t *testing.T) {
	t.Parallel()

	details := CustomDetails{
		{Label: "Color", Value: "Jet Black Matte", Price: decimal.NewFromInt(150000)},
		{Label: "Exterior", Value: "Body Kit", Price: decimal.NewFromInt(45000)},
	}
	if got := details.TotalPrice(); !got.Equal(decimal.NewFromInt(195000)) {
		t.Fatalf("unexpected total %s", got)
	}

	var empty CustomDetails
	if got := empty.TotalPrice(); !got.IsZero() {
		t.Fatalf("empty details must total zero, got %s", got)
	}
}

func TestCustomDetailsNilValue(t *testing.T) {
	t.Parallel()

	var details CustomDetails
	raw, err := details.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw.([]byte)) != "[]" {
		t.Fatalf("nil details must serialize as empty array, got %s", raw)
	}
}

func TestCustomDetailsScanRejectsUnknownType(t *testing.T) {
	t.Parallel()

	var details CustomDetails
	if err := details.Scan(42); err == nil {
		t.Fatal("expected error for unsupported scan type")
	}
}
