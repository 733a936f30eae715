package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

// OrderSummary holds the aggregates the discount engine matches against.
// It is computed in a single pass over the order so repeated evaluations
// never re-walk the line items.
type OrderSummary struct {
	Subtotal    decimal.Decimal
	Weight      int
	FoodIDs     map[uuid.UUID]struct{}
	CategoryIDs map[uuid.UUID]struct{}
	SizeCodes   map[int]struct{}
}

// Summarize walks the order once and returns its price, weight and the sets
// of foods, categories and size codes it contains. Line items must carry
// their Food and Size associations; quantities below one count as one.
func Summarize(order *models.Order) (OrderSummary, error) {
	summary := OrderSummary{
		Subtotal:    decimal.Zero,
		FoodIDs:     make(map[uuid.UUID]struct{}),
		CategoryIDs: make(map[uuid.UUID]struct{}),
		SizeCodes:   make(map[int]struct{}),
	}
	if order == nil {
		return summary, nil
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.Size == nil {
			return OrderSummary{}, fmt.Errorf("line item %s: size not loaded", item.ID)
		}
		if item.Food == nil {
			return OrderSummary{}, fmt.Errorf("line item %s: food not loaded", item.ID)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		summary.Subtotal = summary.Subtotal.Add(item.Size.Price.Mul(decimal.NewFromInt(int64(quantity))))
		summary.Weight += item.Size.Weight * quantity

		for j := range item.Additions {
			selection := &item.Additions[j]
			if selection.Addition == nil {
				return OrderSummary{}, fmt.Errorf("line item %s: addition not loaded", item.ID)
			}
			count := selection.Quantity
			if count < 1 {
				count = 1
			}
			summary.Subtotal = summary.Subtotal.Add(selection.Addition.Price.Mul(decimal.NewFromInt(int64(count))))
		}

		summary.FoodIDs[item.FoodID] = struct{}{}
		if item.Food.CategoryID != nil {
			summary.CategoryIDs[*item.Food.CategoryID] = struct{}{}
		}
		summary.SizeCodes[item.Size.Size] = struct{}{}
	}

	return summary, nil
}

// HasFood reports whether the order contains the given food.
func (s OrderSummary) HasFood(id uuid.UUID) bool {
	_, ok := s.FoodIDs[id]
	return ok
}

// HasCategory reports whether the order contains a food from the given category.
func (s OrderSummary) HasCategory(id uuid.UUID) bool {
	_, ok := s.CategoryIDs[id]
	return ok
}

// HasSizeCode reports whether any line item was ordered in the given size code.
func (s OrderSummary) HasSizeCode(code int) bool {
	_, ok := s.SizeCodes[code]
	return ok
}

// IsEmpty reports whether the order had no line items.
func (s OrderSummary) IsEmpty() bool {
	return len(s.FoodIDs) == 0
}
