package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

// AdditionSelectionInput picks an addition for a line item.
type AdditionSelectionInput struct {
	AdditionID uuid.UUID
	Quantity   int
}

// LineItemInput describes one food at one size.
type LineItemInput struct {
	FoodID    uuid.UUID
	SizeID    uuid.UUID
	Quantity  int
	Additions []AdditionSelectionInput
}

// CreateOrderInput holds the validated payload to quote or place an order.
type CreateOrderInput struct {
	AddressID *uuid.UUID
	Items     []LineItemInput
}

// QuoteDTO is the priced view of an order before (or after) placement.
type QuoteDTO struct {
	Subtotal decimal.Decimal           `json:"subtotal"`
	Weight   int                       `json:"weight"`
	Discount *discount.AppliedDiscount `json:"discount,omitempty"`
	Total    decimal.Decimal           `json:"total"`
}

// LineItemDTO is the API shape of a placed line item.
type LineItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	FoodID    uuid.UUID       `json:"food_id"`
	FoodTitle string          `json:"food_title"`
	SizeID    uuid.UUID       `json:"size_id"`
	SizeTitle string          `json:"size_title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderDTO is the API shape of a placed order.
type OrderDTO struct {
	ID        uuid.UUID     `json:"id"`
	UserID    *uuid.UUID    `json:"user_id,omitempty"`
	AddressID *uuid.UUID    `json:"address_id,omitempty"`
	Items     []LineItemDTO `json:"items"`
	Quote     *QuoteDTO     `json:"quote,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func toOrderDTO(o *models.Order, quote *QuoteDTO) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		AddressID: o.AddressID,
		Quote:     quote,
		CreatedAt: o.CreatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		line := LineItemDTO{
			ID:       item.ID,
			FoodID:   item.FoodID,
			SizeID:   item.SizeID,
			Quantity: item.Quantity,
		}
		if item.Food != nil {
			line.FoodTitle = item.Food.Title
		}
		if item.Size != nil {
			line.SizeTitle = item.Size.Title
			line.UnitPrice = item.Size.Price
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}
