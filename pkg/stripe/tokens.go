package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/token"
)

// CardDetails carries the raw card fields submitted at checkout.
type CardDetails struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
	Name     string
}

// Validate checks the fields Stripe requires before a tokenization attempt.
func (d CardDetails) Validate() error {
	if strings.TrimSpace(d.Number) == "" {
		return fmt.Errorf("card number is required")
	}
	if strings.TrimSpace(d.ExpMonth) == "" || strings.TrimSpace(d.ExpYear) == "" {
		return fmt.Errorf("card expiry is required")
	}
	if strings.TrimSpace(d.CVC) == "" {
		return fmt.Errorf("card cvc is required")
	}
	return nil
}

// CreateCardToken exchanges raw card details for a single-use Stripe token.
func (c *Client) CreateCardToken(ctx context.Context, details CardDetails) (string, error) {
	if c == nil || c.api == nil {
		return "", fmt.Errorf("stripe client not initialized")
	}
	if err := details.Validate(); err != nil {
		return "", err
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(strings.TrimSpace(details.Number)),
			ExpMonth: stripe.String(strings.TrimSpace(details.ExpMonth)),
			ExpYear:  stripe.String(strings.TrimSpace(details.ExpYear)),
			CVC:      stripe.String(strings.TrimSpace(details.CVC)),
		},
	}
	if name := strings.TrimSpace(details.Name); name != "" {
		params.Card.Name = stripe.String(name)
	}
	params.Context = ctx

	tok, err := token.New(params)
	if err != nil {
		return "", fmt.Errorf("creating card token: %w", err)
	}
	return tok.ID, nil
}
