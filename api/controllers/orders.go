package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	order "github.com/aidosmk/food-delivery-backend/internal/orders"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type orderAdditionRequest struct {
	AdditionID uuid.UUID `json:"addition_id" validate:"required"`
	Quantity   int       `json:"quantity"`
}

type orderItemRequest struct {
	FoodID    uuid.UUID              `json:"food_id" validate:"required"`
	SizeID    uuid.UUID              `json:"size_id" validate:"required"`
	Quantity  int                    `json:"quantity"`
	Additions []orderAdditionRequest `json:"additions"`
}

type createOrderRequest struct {
	AddressID *uuid.UUID         `json:"address_id"`
	Items     []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func orderInputFromRequest(body createOrderRequest) order.CreateOrderInput {
	input := order.CreateOrderInput{AddressID: body.AddressID}
	for _, item := range body.Items {
		line := order.LineItemInput{
			FoodID:   item.FoodID,
			SizeID:   item.SizeID,
			Quantity: item.Quantity,
		}
		for _, addition := range item.Additions {
			line.Additions = append(line.Additions, order.AdditionSelectionInput{
				AdditionID: addition.AdditionID,
				Quantity:   addition.Quantity,
			})
		}
		input.Items = append(input.Items, line)
	}
	return input
}

// QuoteOrder prices an order without placing it. Works for anonymous
// callers; user-bound discounts just never match them.
func QuoteOrder(svc order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := optionalUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), userID, orderInputFromRequest(body))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CreateOrder places the order for the authenticated user.
func CreateOrder(svc order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.Create(r.Context(), userID, orderInputFromRequest(body))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// GetOrder returns one of the caller's orders.
func GetOrder(svc order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if found.UserID == nil || *found.UserID != userID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// ListOrders returns a cursor page of the caller's orders.
func ListOrders(svc order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, next, err := svc.ListForUser(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, orders, next)
	}
}
