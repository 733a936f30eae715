package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type conditionRequest struct {
	Title             string           `json:"title"`
	MinOrderPrice     *decimal.Decimal `json:"min_order_price"`
	MinOrderWeight    *int             `json:"min_order_weight"`
	FoodCategoryIDs   []uuid.UUID      `json:"food_category_ids"`
	FoodIDs           []uuid.UUID      `json:"food_ids"`
	FoodSize          *int             `json:"food_size"`
	UserRoles         []string         `json:"user_roles"`
	DiscountCard      bool             `json:"discount_card"`
	Birthday          bool             `json:"birthday"`
	OrderingTimeStart *string          `json:"ordering_time_start"`
	OrderingTimeEnd   *string          `json:"ordering_time_end"`
}

type createDiscountRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	BannerID    *uuid.UUID           `json:"banner_id"`
	Status      enums.DiscountStatus `json:"status" validate:"required"`
	Value       decimal.Decimal      `json:"value"`
	StartsAt    *time.Time           `json:"starts_at"`
	ExpiresAt   *time.Time           `json:"expires_at"`
	Condition   conditionRequest     `json:"condition"`
}

type updateDiscountRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	BannerID    *uuid.UUID            `json:"banner_id"`
	Status      *enums.DiscountStatus `json:"status"`
	Value       *decimal.Decimal      `json:"value"`
	StartsAt    *time.Time            `json:"starts_at"`
	ExpiresAt   *time.Time            `json:"expires_at"`
	Condition   *conditionRequest     `json:"condition"`
}

func conditionInputFromRequest(body conditionRequest) discount.ConditionInput {
	return discount.ConditionInput{
		Title:             body.Title,
		MinOrderPrice:     body.MinOrderPrice,
		MinOrderWeight:    body.MinOrderWeight,
		FoodCategoryIDs:   body.FoodCategoryIDs,
		FoodIDs:           body.FoodIDs,
		FoodSize:          body.FoodSize,
		UserRoles:         body.UserRoles,
		DiscountCard:      body.DiscountCard,
		Birthday:          body.Birthday,
		OrderingTimeStart: body.OrderingTimeStart,
		OrderingTimeEnd:   body.OrderingTimeEnd,
	}
}

func CreateDiscount(svc discount.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createDiscountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateDiscount(r.Context(), discount.CreateDiscountInput{
			Title:       body.Title,
			Description: body.Description,
			BannerID:    body.BannerID,
			Status:      body.Status,
			Value:       body.Value,
			StartsAt:    body.StartsAt,
			ExpiresAt:   body.ExpiresAt,
			Condition:   conditionInputFromRequest(body.Condition),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func UpdateDiscount(svc discount.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discountID, err := pathUUID(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateDiscountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := discount.UpdateDiscountInput{
			Title:       body.Title,
			Description: body.Description,
			BannerID:    body.BannerID,
			Status:      body.Status,
			Value:       body.Value,
			StartsAt:    body.StartsAt,
			ExpiresAt:   body.ExpiresAt,
		}
		if body.Condition != nil {
			cond := conditionInputFromRequest(*body.Condition)
			input.Condition = &cond
		}

		updated, err := svc.UpdateDiscount(r.Context(), discountID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func GetDiscount(svc discount.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discountID, err := pathUUID(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		found, err := svc.GetDiscount(r.Context(), discountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func ListDiscounts(svc discount.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListDiscounts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, page.Discounts, page.NextCursor)
	}
}

func DeleteDiscount(svc discount.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discountID, err := pathUUID(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteDiscount(r.Context(), discountID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
