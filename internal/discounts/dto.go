package discount

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// ConditionInput holds the validated payload to create or replace a
// discount condition. Every field is optional; an empty input produces a
// condition that matches any order.
type ConditionInput struct {
	Title             string
	MinOrderPrice     *decimal.Decimal
	MinOrderWeight    *int
	FoodCategoryIDs   []uuid.UUID
	FoodIDs           []uuid.UUID
	FoodSize          *int
	UserRoles         []string
	DiscountCard      bool
	Birthday          bool
	OrderingTimeStart *string
	OrderingTimeEnd   *string
}

// CreateDiscountInput holds the validated payload to create a discount.
type CreateDiscountInput struct {
	Title       string
	Description string
	BannerID    *uuid.UUID
	Status      enums.DiscountStatus
	Value       decimal.Decimal
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Condition   ConditionInput
}

// UpdateDiscountInput holds optional mutation values for a discount.
type UpdateDiscountInput struct {
	Title       *string
	Description *string
	BannerID    *uuid.UUID
	Status      *enums.DiscountStatus
	Value       *decimal.Decimal
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Condition   *ConditionInput
}

// ConditionDTO is the API shape of a discount condition.
type ConditionDTO struct {
	ID                uuid.UUID        `json:"id"`
	Title             string           `json:"title"`
	MinOrderPrice     *decimal.Decimal `json:"min_order_price,omitempty"`
	MinOrderWeight    *int             `json:"min_order_weight,omitempty"`
	FoodCategoryIDs   []uuid.UUID      `json:"food_category_ids,omitempty"`
	FoodIDs           []uuid.UUID      `json:"food_ids,omitempty"`
	FoodSize          *int             `json:"food_size,omitempty"`
	UserRoles         []string         `json:"user_roles,omitempty"`
	DiscountCard      bool             `json:"discount_card"`
	Birthday          bool             `json:"birthday"`
	OrderingTimeStart *string          `json:"ordering_time_start,omitempty"`
	OrderingTimeEnd   *string          `json:"ordering_time_end,omitempty"`
}

// DiscountDTO is the API shape of a discount.
type DiscountDTO struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	BannerID    *uuid.UUID           `json:"banner_id,omitempty"`
	Status      enums.DiscountStatus `json:"status"`
	Value       decimal.Decimal      `json:"value"`
	StartsAt    *time.Time           `json:"starts_at,omitempty"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
	Condition   *ConditionDTO        `json:"condition,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// DiscountListResult carries a page of discounts plus the next cursor.
type DiscountListResult struct {
	Discounts  []DiscountDTO `json:"discounts"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// AppliedDiscount reports one eligible discount and its money value for a
// specific order.
type AppliedDiscount struct {
	DiscountID uuid.UUID       `json:"discount_id"`
	Title      string          `json:"title"`
	Value      decimal.Decimal `json:"value"`
	Amount     decimal.Decimal `json:"amount"`
}

func toConditionDTO(cond *models.DiscountCondition) *ConditionDTO {
	if cond == nil {
		return nil
	}
	dto := &ConditionDTO{
		ID:                cond.ID,
		Title:             cond.Title,
		MinOrderPrice:     cond.MinOrderPrice,
		MinOrderWeight:    cond.MinOrderWeight,
		FoodSize:          cond.FoodSize,
		UserRoles:         cond.UserRoles,
		DiscountCard:      cond.DiscountCard,
		Birthday:          cond.Birthday,
		OrderingTimeStart: cond.OrderingTimeStart,
		OrderingTimeEnd:   cond.OrderingTimeEnd,
	}
	for i := range cond.FoodCategories {
		dto.FoodCategoryIDs = append(dto.FoodCategoryIDs, cond.FoodCategories[i].ID)
	}
	for i := range cond.Foods {
		dto.FoodIDs = append(dto.FoodIDs, cond.Foods[i].ID)
	}
	return dto
}

func toDiscountDTO(d *models.Discount) *DiscountDTO {
	if d == nil {
		return nil
	}
	return &DiscountDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		BannerID:    d.BannerID,
		Status:      d.Status,
		Value:       d.Value,
		StartsAt:    d.StartsAt,
		ExpiresAt:   d.ExpiresAt,
		Condition:   toConditionDTO(d.Condition),
		CreatedAt:   d.CreatedAt,
	}
}
