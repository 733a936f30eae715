package discount

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

func TestValidateValueBounds(t *testing.T) {
	for _, bad := range []string{"0", "-1", "100.01"} {
		err := validateValue(decimal.RequireFromString(bad))
		if err == nil {
			t.Fatalf("expected validation error for value %s", bad)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error code, got %v", err)
		}
	}
	for _, ok := range []string{"0.01", "15", "100"} {
		if err := validateValue(decimal.RequireFromString(ok)); err != nil {
			t.Fatalf("expected value %s to pass, got %v", ok, err)
		}
	}
}

func TestValidateWindowOrdering(t *testing.T) {
	start := time.Now()
	end := start.Add(time.Hour)

	if err := validateWindow(&start, &end); err != nil {
		t.Fatalf("expected forward window to pass, got %v", err)
	}
	if err := validateWindow(nil, &end); err != nil {
		t.Fatalf("expected open start to pass, got %v", err)
	}
	if err := validateWindow(&start, nil); err != nil {
		t.Fatalf("expected open end to pass, got %v", err)
	}
	if err := validateWindow(&end, &start); err == nil {
		t.Fatal("expected inverted window to fail")
	}
	if err := validateWindow(&start, &start); err == nil {
		t.Fatal("expected zero-length window to fail")
	}
}

func TestValidateConditionInput(t *testing.T) {
	if err := validateConditionInput(ConditionInput{}); err != nil {
		t.Fatalf("expected empty condition to pass, got %v", err)
	}

	negative := decimal.RequireFromString("-1")
	if err := validateConditionInput(ConditionInput{MinOrderPrice: &negative}); err == nil {
		t.Fatal("expected negative min price to fail")
	}

	weight := -10
	if err := validateConditionInput(ConditionInput{MinOrderWeight: &weight}); err == nil {
		t.Fatal("expected negative min weight to fail")
	}

	badTime := "25:99"
	if err := validateConditionInput(ConditionInput{OrderingTimeStart: &badTime}); err == nil {
		t.Fatal("expected malformed ordering time to fail")
	}

	goodTime := "18:30"
	if err := validateConditionInput(ConditionInput{OrderingTimeStart: &goodTime, OrderingTimeEnd: &goodTime}); err != nil {
		t.Fatalf("expected HH:MM ordering time to pass, got %v", err)
	}
}

func TestConditionFromInputCopiesFields(t *testing.T) {
	minPrice := decimal.RequireFromString("250.00")
	size := 2
	input := ConditionInput{
		Title:         "weekend special",
		MinOrderPrice: &minPrice,
		FoodSize:      &size,
		UserRoles:     []string{"customer"},
		DiscountCard:  true,
		Birthday:      true,
	}

	cond := conditionFromInput(input)
	if cond.Title != input.Title {
		t.Fatalf("expected title copied, got %q", cond.Title)
	}
	if cond.MinOrderPrice == nil || !cond.MinOrderPrice.Equal(minPrice) {
		t.Fatal("expected min price copied")
	}
	if cond.FoodSize == nil || *cond.FoodSize != size {
		t.Fatal("expected food size copied")
	}
	if len(cond.UserRoles) != 1 || cond.UserRoles[0] != "customer" {
		t.Fatalf("expected roles copied, got %v", cond.UserRoles)
	}
	if !cond.DiscountCard || !cond.Birthday {
		t.Fatal("expected boolean flags copied")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	deduped := uniqueIDs([]uuid.UUID{a, b, a, b, a})
	if len(deduped) != 2 {
		t.Fatalf("expected 2 unique ids, got %d", len(deduped))
	}
	if deduped[0] != a || deduped[1] != b {
		t.Fatal("expected first-seen order preserved")
	}
}
