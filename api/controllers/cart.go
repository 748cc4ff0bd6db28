package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/api/middleware"
	"github.com/carmodifyx/modifyx-backend/api/responses"
	"github.com/carmodifyx/modifyx-backend/api/validators"
	cartsvc "github.com/carmodifyx/modifyx-backend/internal/cart"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

func GetCartItems(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		cart, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// The storefront sends {productId|customData, itemType, quantity}; the
// kind is derived from which payload half is present, so itemType is
// accepted and ignored.
type addCartItemRequest struct {
	ProductID *uuid.UUID             `json:"productId,omitempty"`
	Custom    *customCartItemRequest `json:"customData,omitempty"`
	ItemType  string                 `json:"itemType,omitempty" validate:"omitempty,oneof=standard custom"`
	Quantity  int                    `json:"quantity" validate:"omitempty,min=1"`
}

type customCartItemRequest struct {
	Name    string              `json:"name" validate:"required"`
	Price   decimal.Decimal     `json:"price"`
	Image   *string             `json:"image,omitempty"`
	Details types.CustomDetails `json:"details,omitempty"`
}

func (r addCartItemRequest) toInput() cartsvc.AddItemInput {
	input := cartsvc.AddItemInput{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
	}
	if r.Custom != nil {
		input.Custom = &cartsvc.CustomItemInput{
			Name:    r.Custom.Name,
			Price:   r.Custom.Price,
			Image:   r.Custom.Image,
			Details: r.Custom.Details,
		}
	}
	return input
}

func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddItem(r.Context(), userID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cart)
	}
}

type updateQuantityRequest struct {
	ItemID   uuid.UUID `json:"itemId" validate:"required"`
	Quantity int       `json:"quantity"`
}

func UpdateCartQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.SetQuantity(r.Context(), userID, payload.ItemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		cart, err := svc.RemoveItem(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
