package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// OrderDTO is the order shape returned to clients.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	Customer        types.Customer        `json:"customer"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod   `json:"paymentMethod"`
	DeliveryOption  enums.DeliveryOption  `json:"deliveryOption"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Shipping        decimal.Decimal       `json:"shipping"`
	Tax             decimal.Decimal       `json:"tax"`
	SameDayFee      decimal.Decimal       `json:"sameDayFee"`
	Total           decimal.Decimal       `json:"total"`
	Status          enums.OrderStatus     `json:"status"`
	Items           []OrderLineDTO        `json:"items"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// OrderLineDTO is one purchased line inside an order.
type OrderLineDTO struct {
	ID            uuid.UUID           `json:"id"`
	Kind          enums.ItemKind      `json:"itemType"`
	ProductID     *uuid.UUID          `json:"productId,omitempty"`
	Name          string              `json:"name"`
	UnitPrice     decimal.Decimal     `json:"unitPrice"`
	Quantity      int                 `json:"quantity"`
	LineTotal     decimal.Decimal     `json:"lineTotal"`
	CustomDetails types.CustomDetails `json:"customDetails,omitempty"`
}

// ToDTO maps a persisted order to its client shape.
func ToDTO(order *models.Order) *OrderDTO {
	items := make([]OrderLineDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderLineDTO{
			ID:            item.ID,
			Kind:          item.Kind,
			ProductID:     item.ProductID,
			Name:          item.Name,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal,
			CustomDetails: item.CustomDetails,
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Customer:        order.Customer,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		DeliveryOption:  order.DeliveryOption,
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Tax:             order.Tax,
		SameDayFee:      order.SameDayFee,
		Total:           order.Total,
		Status:          order.Status,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
