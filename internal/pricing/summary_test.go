package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func buildOrder(items ...models.OrderLineItem) *models.Order {
	return &models.Order{ID: uuid.New(), Items: items}
}

func lineItem(categoryID *uuid.UUID, sizeCode int, sizePrice string, weight, quantity int) models.OrderLineItem {
	foodID := uuid.New()
	return models.OrderLineItem{
		ID:     uuid.New(),
		FoodID: foodID,
		Food:   &models.Food{ID: foodID, CategoryID: categoryID},
		SizeID: uuid.New(),
		Size: &models.SizeAndPrice{
			Size:   sizeCode,
			Price:  price(sizePrice),
			Weight: weight,
		},
		Quantity: quantity,
	}
}

func TestSummarizeAggregatesPriceWeightAndSets(t *testing.T) {
	pizzaCategory := uuid.New()
	drinksCategory := uuid.New()

	first := lineItem(&pizzaCategory, 2, "450.00", 500, 2)
	second := lineItem(&drinksCategory, 1, "100.00", 330, 1)

	summary, err := Summarize(buildOrder(first, second))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if !summary.Subtotal.Equal(price("1000.00")) {
		t.Fatalf("expected subtotal 1000.00, got %s", summary.Subtotal)
	}
	if summary.Weight != 1330 {
		t.Fatalf("expected weight 1330, got %d", summary.Weight)
	}
	if !summary.HasCategory(pizzaCategory) || !summary.HasCategory(drinksCategory) {
		t.Fatal("expected both categories in summary")
	}
	if !summary.HasFood(first.FoodID) || !summary.HasFood(second.FoodID) {
		t.Fatal("expected both foods in summary")
	}
	if !summary.HasSizeCode(2) || !summary.HasSizeCode(1) {
		t.Fatal("expected both size codes in summary")
	}
}

func TestSummarizeIncludesAdditionPrices(t *testing.T) {
	category := uuid.New()
	item := lineItem(&category, 1, "300.00", 400, 1)
	item.Additions = []models.AdditionSelection{
		{
			ID:       uuid.New(),
			Addition: &models.Addition{ID: uuid.New(), Price: price("50.00")},
			Quantity: 2,
		},
		{
			ID:       uuid.New(),
			Addition: &models.Addition{ID: uuid.New(), Price: price("30.00")},
			// quantity zero counts as one
		},
	}

	summary, err := Summarize(buildOrder(item))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !summary.Subtotal.Equal(price("430.00")) {
		t.Fatalf("expected subtotal 430.00, got %s", summary.Subtotal)
	}
	// additions carry no weight
	if summary.Weight != 400 {
		t.Fatalf("expected weight 400, got %d", summary.Weight)
	}
}

func TestSummarizeZeroQuantityCountsAsOne(t *testing.T) {
	category := uuid.New()
	item := lineItem(&category, 3, "200.00", 250, 0)

	summary, err := Summarize(buildOrder(item))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !summary.Subtotal.Equal(price("200.00")) {
		t.Fatalf("expected subtotal 200.00, got %s", summary.Subtotal)
	}
	if summary.Weight != 250 {
		t.Fatalf("expected weight 250, got %d", summary.Weight)
	}
}

func TestSummarizeSkipsCategoryWhenFoodHasNone(t *testing.T) {
	item := lineItem(nil, 1, "150.00", 200, 1)

	summary, err := Summarize(buildOrder(item))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summary.CategoryIDs) != 0 {
		t.Fatalf("expected no categories, got %d", len(summary.CategoryIDs))
	}
	if !summary.HasFood(item.FoodID) {
		t.Fatal("expected food to be recorded")
	}
}

func TestSummarizeEmptyOrder(t *testing.T) {
	summary, err := Summarize(buildOrder())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !summary.Subtotal.IsZero() || summary.Weight != 0 {
		t.Fatalf("expected zero aggregates, got %s / %d", summary.Subtotal, summary.Weight)
	}
	if !summary.IsEmpty() {
		t.Fatal("expected empty summary")
	}

	nilSummary, err := Summarize(nil)
	if err != nil {
		t.Fatalf("summarize nil: %v", err)
	}
	if !nilSummary.IsEmpty() {
		t.Fatal("expected empty summary for nil order")
	}
}

func TestSummarizeRequiresLoadedAssociations(t *testing.T) {
	category := uuid.New()

	missingSize := lineItem(&category, 1, "100.00", 100, 1)
	missingSize.Size = nil
	if _, err := Summarize(buildOrder(missingSize)); err == nil {
		t.Fatal("expected error for missing size")
	}

	missingFood := lineItem(&category, 1, "100.00", 100, 1)
	missingFood.Food = nil
	if _, err := Summarize(buildOrder(missingFood)); err == nil {
		t.Fatal("expected error for missing food")
	}
}
