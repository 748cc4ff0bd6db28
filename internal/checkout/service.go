package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/internal/orders"
	"github.com/carmodifyx/modifyx-backend/internal/pricing"
	"github.com/carmodifyx/modifyx-backend/pkg/db"
	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
	"github.com/carmodifyx/modifyx-backend/pkg/stripe"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// CartReader is the slice of the cart the checkout needs.
type CartReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
}

// OrderStore persists finished orders.
type OrderStore interface {
	CreateWithCartClear(ctx context.Context, order *models.Order, userID string) error
	FindByOrderNumber(ctx context.Context, userID, orderNumber string) (*models.Order, error)
}

// PaymentTokenizer exchanges raw card details for a payment token.
type PaymentTokenizer interface {
	CreateCardToken(ctx context.Context, details stripe.CardDetails) (string, error)
}

// EventPublisher announces completed orders to downstream consumers.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

// PlaceOrderInput is the validated checkout payload.
type PlaceOrderInput struct {
	Customer        types.Customer
	ShippingAddress types.ShippingAddress
	PaymentMethod   enums.PaymentMethod
	DeliveryOption  enums.DeliveryOption
	Card            *stripe.CardDetails
}

// Service assembles checkouts: it re-prices the cart server side,
// captures payment and persists the order atomically.
type Service interface {
	PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*orders.OrderDTO, error)
	TrackOrder(ctx context.Context, userID, orderNumber string) (*orders.OrderDTO, error)
}

type service struct {
	cart      CartReader
	orders    OrderStore
	policy    pricing.Policy
	tokenizer PaymentTokenizer
	publisher EventPublisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the checkout service.
func NewService(cart CartReader, orderStore OrderStore, policy pricing.Policy, tokenizer PaymentTokenizer, publisher EventPublisher, logg *logger.Logger) Service {
	return &service{
		cart:      cart,
		orders:    orderStore,
		policy:    policy,
		tokenizer: tokenizer,
		publisher: publisher,
		logg:      logg,
		now:       time.Now,
	}
}

// PlaceOrder runs the whole checkout. Client-sent totals are ignored:
// the cart is re-priced from persisted lines so the order can never be
// cheaper than the catalog says. Card payments fail closed: when
// tokenization fails nothing is persisted and the cart stays intact.
func (s *service) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart for checkout")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	summary := s.policy.Summarize(lines)
	surcharge := s.policy.SurchargeFor(input.DeliveryOption)
	total := summary.Total.Add(surcharge)

	var paymentTokenID *string
	if input.PaymentMethod.RequiresCardCapture() {
		if input.Card == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "card details are required for credit card payment")
		}
		tokenID, err := s.tokenizer.CreateCardToken(ctx, *input.Card)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodePayment, err, "capturing card payment")
		}
		paymentTokenID = &tokenID
	}

	order := &models.Order{
		OrderNumber:     s.newOrderNumber(),
		UserID:          userID,
		Customer:        input.Customer,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		DeliveryOption:  input.DeliveryOption,
		Subtotal:        summary.Subtotal,
		Shipping:        summary.Shipping,
		Tax:             summary.Tax,
		SameDayFee:      surcharge,
		Total:           total,
		PaymentTokenID:  paymentTokenID,
		Status:          enums.OrderStatusPending,
		Items:           normalizeItems(items),
	}

	if err := s.orders.CreateWithCartClear(ctx, order, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting order")
	}

	// The order is committed; a failed event publish must not fail the
	// checkout.
	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithOrderNumber(ctx, order.OrderNumber), "publishing order created event", err)
		}
	}

	return orders.ToDTO(order), nil
}

func (s *service) TrackOrder(ctx context.Context, userID, orderNumber string) (*orders.OrderDTO, error) {
	trimmed := strings.TrimSpace(orderNumber)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	order, err := s.orders.FindByOrderNumber(ctx, userID, trimmed)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return orders.ToDTO(order), nil
}

// normalizeItems snapshots cart lines into order lines so the order
// stays frozen even when the catalog changes afterwards.
func normalizeItems(items []models.CartItem) []models.OrderLineItem {
	out := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderLineItem{
			Kind:          item.Kind,
			ProductID:     item.ProductID,
			Name:          item.Name,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineTotal:     item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			CustomDetails: item.CustomDetails,
		})
	}
	return out
}

func (s *service) newOrderNumber() string {
	return fmt.Sprintf("ORD-%d", s.now().UnixMilli())
}

func validateInput(input PlaceOrderInput) error {
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if !input.DeliveryOption.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery option %q", input.DeliveryOption))
	}
	if strings.TrimSpace(input.Customer.Name) == "" || strings.TrimSpace(input.Customer.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name and email are required")
	}
	if strings.TrimSpace(input.ShippingAddress.Street) == "" || strings.TrimSpace(input.ShippingAddress.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping street and city are required")
	}
	return nil
}
