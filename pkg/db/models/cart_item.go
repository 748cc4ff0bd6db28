package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// CartItem persists one line of a user's cart. Standard items snapshot a
// catalog product; custom items carry the full build payload inline so the
// line survives catalog changes.
type CartItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        string              `gorm:"column:user_id;not null;index"`
	Kind          enums.ItemKind      `gorm:"column:kind;type:text;not null"`
	ProductID     *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	Name          string              `gorm:"column:name;not null"`
	UnitPrice     decimal.Decimal     `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Image         *string             `gorm:"column:image"`
	CustomDetails types.CustomDetails `gorm:"column:custom_details;type:jsonb"`
	Quantity      int                 `gorm:"column:quantity;not null;default:1"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
