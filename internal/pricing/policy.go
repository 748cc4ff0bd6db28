package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/config"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
)

// Policy carries the storefront pricing rules applied to every cart quote
// and checkout. All amounts are in the store currency.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
	SameDayFee            decimal.Decimal
}

// PolicyFromConfig parses the configured decimal strings into a Policy.
func PolicyFromConfig(cfg config.PricingConfig) (Policy, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return Policy{}, fmt.Errorf("parsing free shipping threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	fee, err := decimal.NewFromString(cfg.FlatShippingFee)
	if err != nil {
		return Policy{}, fmt.Errorf("parsing flat shipping fee %q: %w", cfg.FlatShippingFee, err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Policy{}, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	sameDay, err := decimal.NewFromString(cfg.SameDayFee)
	if err != nil {
		return Policy{}, fmt.Errorf("parsing same day fee %q: %w", cfg.SameDayFee, err)
	}
	return Policy{
		FreeShippingThreshold: threshold,
		FlatShippingFee:       fee,
		TaxRate:               rate,
		SameDayFee:            sameDay,
	}, nil
}

// SurchargeFor returns the delivery surcharge for the chosen option.
// Regular delivery carries no surcharge.
func (p Policy) SurchargeFor(option enums.DeliveryOption) decimal.Decimal {
	if option == enums.DeliveryOptionSameDay {
		return p.SameDayFee
	}
	return decimal.Zero
}
