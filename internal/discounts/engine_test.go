package discount

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

func activeDiscount(value string) *models.Discount {
	return &models.Discount{
		ID:        uuid.New(),
		Title:     "promo",
		Status:    enums.DiscountStatusActive,
		Value:     decimal.RequireFromString(value),
		Condition: &models.DiscountCondition{ID: uuid.New()},
	}
}

func TestIsActiveAtRequiresActiveStatus(t *testing.T) {
	now := time.Now()

	d := activeDiscount("10")
	if !IsActiveAt(d, now) {
		t.Fatal("expected active discount without window to be live")
	}

	d.Status = enums.DiscountStatusInactive
	if IsActiveAt(d, now) {
		t.Fatal("expected inactive discount to be dead")
	}

	d.Status = enums.DiscountStatusPostponed
	if IsActiveAt(d, now) {
		t.Fatal("expected postponed discount to be dead")
	}

	if IsActiveAt(nil, now) {
		t.Fatal("expected nil discount to be dead")
	}
}

func TestIsActiveAtWindowBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	d := activeDiscount("10")
	d.StartsAt = &start
	d.ExpiresAt = &end

	if !IsActiveAt(d, now) {
		t.Fatal("expected discount inside window to be live")
	}
	if !IsActiveAt(d, start) {
		t.Fatal("expected window start to be inclusive")
	}
	if !IsActiveAt(d, end) {
		t.Fatal("expected window end to be inclusive")
	}
	if IsActiveAt(d, start.Add(-time.Second)) {
		t.Fatal("expected discount before window to be dead")
	}
	if IsActiveAt(d, end.Add(time.Second)) {
		t.Fatal("expected discount after window to be dead")
	}

	// A single unset bound leaves that side open.
	d.StartsAt = nil
	if !IsActiveAt(d, end.Add(-time.Minute)) {
		t.Fatal("expected open start to be live before the end bound")
	}
	d.StartsAt = &start
	d.ExpiresAt = nil
	if !IsActiveAt(d, start.Add(24*time.Hour)) {
		t.Fatal("expected open end to be live after the start bound")
	}
}

func TestAmountIsPercentageOfSubtotal(t *testing.T) {
	d := activeDiscount("15")
	subtotal := decimal.RequireFromString("1000.00")

	amount := Amount(d, subtotal)
	if !amount.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("expected amount 150, got %s", amount)
	}

	if !Amount(nil, subtotal).IsZero() {
		t.Fatal("expected nil discount amount to be zero")
	}
	if !Amount(d, decimal.Zero).IsZero() {
		t.Fatal("expected zero subtotal amount to be zero")
	}
}

func TestIsApplicableCombinesWindowAndCondition(t *testing.T) {
	now := time.Now()
	d := activeDiscount("20")

	summary := summaryWith("500.00", 400, nil, nil, nil)
	if !IsApplicable(d, summary, nil, now) {
		t.Fatal("expected live discount with empty condition to apply")
	}

	d.Status = enums.DiscountStatusInactive
	if IsApplicable(d, summary, nil, now) {
		t.Fatal("expected dead discount to never apply")
	}

	d.Status = enums.DiscountStatusActive
	minPrice := decimal.RequireFromString("600.00")
	d.Condition.MinOrderPrice = &minPrice
	if IsApplicable(d, summary, nil, now) {
		t.Fatal("expected failing condition to block the discount")
	}
}
