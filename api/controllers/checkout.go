package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carmodifyx/modifyx-backend/api/middleware"
	"github.com/carmodifyx/modifyx-backend/api/responses"
	"github.com/carmodifyx/modifyx-backend/api/validators"
	checkoutsvc "github.com/carmodifyx/modifyx-backend/internal/checkout"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
	"github.com/carmodifyx/modifyx-backend/pkg/stripe"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

type placeOrderRequest struct {
	Customer        customerRequest     `json:"customer" validate:"required"`
	ShippingAddress addressRequest      `json:"shippingAddress" validate:"required"`
	PaymentMethod   string              `json:"paymentMethod" validate:"required"`
	DeliveryOption  string              `json:"deliveryOption" validate:"required"`
	Card            *cardDetailsRequest `json:"card,omitempty"`
}

type customerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type addressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type cardDetailsRequest struct {
	Number   string `json:"number" validate:"required"`
	ExpMonth string `json:"expMonth" validate:"required"`
	ExpYear  string `json:"expYear" validate:"required"`
	CVC      string `json:"cvc" validate:"required"`
	Name     string `json:"name,omitempty"`
}

func (r placeOrderRequest) toInput() (checkoutsvc.PlaceOrderInput, error) {
	paymentMethod, err := enums.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return checkoutsvc.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	deliveryOption, err := enums.ParseDeliveryOption(r.DeliveryOption)
	if err != nil {
		return checkoutsvc.PlaceOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery option")
	}

	input := checkoutsvc.PlaceOrderInput{
		Customer: types.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		ShippingAddress: types.ShippingAddress{
			Street:  r.ShippingAddress.Street,
			City:    r.ShippingAddress.City,
			State:   r.ShippingAddress.State,
			Zip:     r.ShippingAddress.Zip,
			Country: r.ShippingAddress.Country,
		},
		PaymentMethod:  paymentMethod,
		DeliveryOption: deliveryOption,
	}
	if r.Card != nil {
		input.Card = &stripe.CardDetails{
			Number:   r.Card.Number,
			ExpMonth: r.Card.ExpMonth,
			ExpYear:  r.Card.ExpYear,
			CVC:      r.Card.CVC,
			Name:     r.Card.Name,
		}
	}
	return input, nil
}

// PlaceOrder runs the checkout for the authenticated user's cart.
func PlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// TrackOrder returns one of the caller's orders by its public number.
func TrackOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		order, err := svc.TrackOrder(r.Context(), userID, chi.URLParam(r, "orderNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
