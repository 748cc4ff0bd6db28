package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// LineItemDTO is one cart line as returned to clients. ExtendedPrice is
// the unit price multiplied by quantity.
type LineItemDTO struct {
	ID            uuid.UUID           `json:"id"`
	Kind          enums.ItemKind      `json:"itemType"`
	ProductID     *uuid.UUID          `json:"productId,omitempty"`
	Name          string              `json:"name"`
	UnitPrice     decimal.Decimal     `json:"unitPrice"`
	Image         *string             `json:"image,omitempty"`
	CustomDetails types.CustomDetails `json:"customDetails,omitempty"`
	Quantity      int                 `json:"quantity"`
	ExtendedPrice decimal.Decimal     `json:"extendedPrice"`
}

// CartDTO carries the full cart view: lines, a quantity index keyed by
// line ID, and the aggregated totals.
type CartDTO struct {
	Items      []LineItemDTO     `json:"items"`
	Quantities map[uuid.UUID]int `json:"quantities"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Shipping   decimal.Decimal   `json:"shipping"`
	Tax        decimal.Decimal   `json:"tax"`
	Total      decimal.Decimal   `json:"total"`
}

// AddItemInput is the validated payload for adding a line. Exactly one
// of ProductID or Custom must be set.
type AddItemInput struct {
	ProductID *uuid.UUID
	Custom    *CustomItemInput
	Quantity  int
}

// CustomItemInput carries a finished custom build ready to join the cart.
type CustomItemInput struct {
	Name    string
	Price   decimal.Decimal
	Image   *string
	Details types.CustomDetails
}

func toLineDTO(item *models.CartItem) LineItemDTO {
	return LineItemDTO{
		ID:            item.ID,
		Kind:          item.Kind,
		ProductID:     item.ProductID,
		Name:          item.Name,
		UnitPrice:     item.UnitPrice,
		Image:         item.Image,
		CustomDetails: item.CustomDetails,
		Quantity:      item.Quantity,
		ExtendedPrice: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}
