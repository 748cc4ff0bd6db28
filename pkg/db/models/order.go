package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// Order captures a completed checkout with its priced totals frozen at
// purchase time.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string                `gorm:"column:order_number;uniqueIndex;not null"`
	UserID          string                `gorm:"column:user_id;not null;index"`
	Customer        types.Customer        `gorm:"column:customer;type:jsonb"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null"`
	DeliveryOption  enums.DeliveryOption  `gorm:"column:delivery_option;type:text;not null"`
	Subtotal        decimal.Decimal       `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping        decimal.Decimal       `gorm:"column:shipping;type:numeric(12,2);not null"`
	Tax             decimal.Decimal       `gorm:"column:tax;type:numeric(12,2);not null"`
	SameDayFee      decimal.Decimal       `gorm:"column:same_day_fee;type:numeric(12,2);not null;default:0"`
	Total           decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentTokenID  *string               `gorm:"column:payment_token_id"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	Items           []OrderLineItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
