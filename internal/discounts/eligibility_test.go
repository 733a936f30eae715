package discount

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/internal/pricing"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

// summaryWith builds an order summary without walking a real order.
func summaryWith(subtotal string, weight int, categories, foods []uuid.UUID, sizes []int) pricing.OrderSummary {
	summary := pricing.OrderSummary{
		Subtotal:    decimal.RequireFromString(subtotal),
		Weight:      weight,
		FoodIDs:     make(map[uuid.UUID]struct{}),
		CategoryIDs: make(map[uuid.UUID]struct{}),
		SizeCodes:   make(map[int]struct{}),
	}
	for _, id := range categories {
		summary.CategoryIDs[id] = struct{}{}
	}
	for _, id := range foods {
		summary.FoodIDs[id] = struct{}{}
	}
	for _, code := range sizes {
		summary.SizeCodes[code] = struct{}{}
	}
	return summary
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func intPtr(value int) *int {
	return &value
}

func TestConditionMatchesVacuously(t *testing.T) {
	summary := summaryWith("0", 0, nil, nil, nil)
	now := time.Now()

	if !ConditionMatches(&models.DiscountCondition{}, summary, nil, now) {
		t.Fatal("expected empty condition to match any order")
	}
	if !ConditionMatches(nil, summary, nil, now) {
		t.Fatal("expected nil condition to match any order")
	}
}

func TestConditionMatchesMinOrderPriceInclusive(t *testing.T) {
	cond := &models.DiscountCondition{MinOrderPrice: decimalPtr("500.00")}
	now := time.Now()

	if !ConditionMatches(cond, summaryWith("500.00", 0, nil, nil, nil), nil, now) {
		t.Fatal("expected subtotal equal to the floor to pass")
	}
	if !ConditionMatches(cond, summaryWith("500.01", 0, nil, nil, nil), nil, now) {
		t.Fatal("expected subtotal above the floor to pass")
	}
	if ConditionMatches(cond, summaryWith("499.99", 0, nil, nil, nil), nil, now) {
		t.Fatal("expected subtotal below the floor to fail")
	}
}

func TestConditionMatchesMinOrderWeightInclusive(t *testing.T) {
	cond := &models.DiscountCondition{MinOrderWeight: intPtr(1000)}
	now := time.Now()

	if !ConditionMatches(cond, summaryWith("0", 1000, nil, nil, nil), nil, now) {
		t.Fatal("expected weight equal to the floor to pass")
	}
	if ConditionMatches(cond, summaryWith("0", 999, nil, nil, nil), nil, now) {
		t.Fatal("expected weight below the floor to fail")
	}
}

func TestConditionMatchesCategoryIntersection(t *testing.T) {
	pizza := uuid.New()
	sushi := uuid.New()
	drinks := uuid.New()
	cond := &models.DiscountCondition{
		FoodCategories: []models.FoodCategory{{ID: pizza}, {ID: sushi}},
	}
	now := time.Now()

	if !ConditionMatches(cond, summaryWith("0", 0, []uuid.UUID{drinks, sushi}, nil, nil), nil, now) {
		t.Fatal("expected one shared category to satisfy the condition")
	}
	if ConditionMatches(cond, summaryWith("0", 0, []uuid.UUID{drinks}, nil, nil), nil, now) {
		t.Fatal("expected disjoint categories to fail")
	}
	if ConditionMatches(cond, summaryWith("0", 0, nil, nil, nil), nil, now) {
		t.Fatal("expected empty order to fail a category condition")
	}
}

func TestConditionMatchesFoodIntersection(t *testing.T) {
	wanted := uuid.New()
	other := uuid.New()
	cond := &models.DiscountCondition{Foods: []models.Food{{ID: wanted}}}
	now := time.Now()

	if !ConditionMatches(cond, summaryWith("0", 0, nil, []uuid.UUID{wanted, other}, nil), nil, now) {
		t.Fatal("expected matching food to pass")
	}
	if ConditionMatches(cond, summaryWith("0", 0, nil, []uuid.UUID{other}, nil), nil, now) {
		t.Fatal("expected non-matching food to fail")
	}
}

func TestConditionMatchesFoodSize(t *testing.T) {
	cond := &models.DiscountCondition{FoodSize: intPtr(2)}
	now := time.Now()

	if !ConditionMatches(cond, summaryWith("0", 0, nil, nil, []int{1, 2}), nil, now) {
		t.Fatal("expected order containing the size code to pass")
	}
	if ConditionMatches(cond, summaryWith("0", 0, nil, nil, []int{1, 3}), nil, now) {
		t.Fatal("expected order without the size code to fail")
	}
}

func TestConditionMatchesUserRoles(t *testing.T) {
	cond := &models.DiscountCondition{UserRoles: pq.StringArray{"courier", "manager"}}
	summary := summaryWith("0", 0, nil, nil, nil)
	now := time.Now()

	courier := &models.User{Roles: pq.StringArray{"customer", "courier"}}
	if !ConditionMatches(cond, summary, courier, now) {
		t.Fatal("expected user holding one required role to pass")
	}

	customer := &models.User{Roles: pq.StringArray{"customer"}}
	if ConditionMatches(cond, summary, customer, now) {
		t.Fatal("expected user without required roles to fail")
	}

	if ConditionMatches(cond, summary, nil, now) {
		t.Fatal("expected anonymous evaluation to fail a role condition")
	}
}

func TestConditionMatchesDiscountCard(t *testing.T) {
	cond := &models.DiscountCondition{DiscountCard: true}
	summary := summaryWith("0", 0, nil, nil, nil)
	now := time.Now()

	holder := &models.User{HasDiscountCard: true}
	if !ConditionMatches(cond, summary, holder, now) {
		t.Fatal("expected card holder to pass")
	}
	if ConditionMatches(cond, summary, &models.User{}, now) {
		t.Fatal("expected user without card to fail")
	}
	if ConditionMatches(cond, summary, nil, now) {
		t.Fatal("expected anonymous evaluation to fail a card condition")
	}
}

func TestConditionMatchesBirthday(t *testing.T) {
	cond := &models.DiscountCondition{Birthday: true}
	summary := summaryWith("0", 0, nil, nil, nil)
	evalAt := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	celebrant := &models.User{Birthday: &birthday}
	if !ConditionMatches(cond, summary, celebrant, evalAt) {
		t.Fatal("expected matching month and day to pass regardless of year")
	}

	offDay := time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC)
	if ConditionMatches(cond, summary, &models.User{Birthday: &offDay}, evalAt) {
		t.Fatal("expected non-matching day to fail")
	}
	if ConditionMatches(cond, summary, &models.User{}, evalAt) {
		t.Fatal("expected user without a birthday on file to fail")
	}
	if ConditionMatches(cond, summary, nil, evalAt) {
		t.Fatal("expected anonymous evaluation to fail a birthday condition")
	}
}

func TestConditionMatchesAllPredicatesMustHold(t *testing.T) {
	category := uuid.New()
	cond := &models.DiscountCondition{
		MinOrderPrice:  decimalPtr("300.00"),
		FoodCategories: []models.FoodCategory{{ID: category}},
		DiscountCard:   true,
	}
	user := &models.User{HasDiscountCard: true}
	now := time.Now()

	passing := summaryWith("300.00", 0, []uuid.UUID{category}, nil, nil)
	if !ConditionMatches(cond, passing, user, now) {
		t.Fatal("expected all predicates holding to pass")
	}

	// One failing predicate is enough to reject.
	cheap := summaryWith("299.99", 0, []uuid.UUID{category}, nil, nil)
	if ConditionMatches(cond, cheap, user, now) {
		t.Fatal("expected failing price predicate to reject")
	}
}

func TestConditionMatchesIsReadOnlyAndRepeatable(t *testing.T) {
	cond := &models.DiscountCondition{MinOrderPrice: decimalPtr("100.00")}
	summary := summaryWith("150.00", 0, nil, nil, nil)
	user := &models.User{HasDiscountCard: true}
	now := time.Now()

	first := ConditionMatches(cond, summary, user, now)
	second := ConditionMatches(cond, summary, user, now)
	if first != second {
		t.Fatal("expected repeated evaluation to be stable")
	}
	if !cond.MinOrderPrice.Equal(decimal.RequireFromString("100.00")) {
		t.Fatal("expected condition to be unchanged by evaluation")
	}
}
