package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// OrderLineItem is the snapshot of each cart line at checkout time.
type OrderLineItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	Kind          enums.ItemKind      `gorm:"column:kind;type:text;not null"`
	ProductID     *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	Name          string              `gorm:"column:name;not null"`
	UnitPrice     decimal.Decimal     `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity      int                 `gorm:"column:quantity;not null"`
	LineTotal     decimal.Decimal     `gorm:"column:line_total;type:numeric(12,2);not null"`
	CustomDetails types.CustomDetails `gorm:"column:custom_details;type:jsonb"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
