package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

type fakeFoodLoader struct {
	foods map[uuid.UUID]*models.Food
}

func (f *fakeFoodLoader) FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	if food, ok := f.foods[id]; ok {
		return food, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUserLoader struct {
	user *models.User
}

func (f *fakeUserLoader) LoadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return f.user, nil
}

type fakeEvaluator struct {
	best *discount.AppliedDiscount
}

func (f *fakeEvaluator) BestDiscount(ctx context.Context, order *models.Order, user *models.User) (*discount.AppliedDiscount, error) {
	return f.best, nil
}

func testFood(sizePrice string, weight int) *models.Food {
	foodID := uuid.New()
	return &models.Food{
		ID:     foodID,
		Title:  "Margherita",
		Active: true,
		SizesAndPrices: []models.SizeAndPrice{
			{ID: uuid.New(), Title: "Medium", Size: 2, Price: decimal.RequireFromString(sizePrice), Weight: weight},
		},
		AcceptedAdditions: []models.Addition{
			{ID: uuid.New(), Title: "Extra cheese", Price: decimal.RequireFromString("50.00")},
		},
	}
}

func TestQuoteAppliesBestDiscount(t *testing.T) {
	food := testFood("500.00", 450)
	userID := uuid.New()

	svc := &service{
		foods: &fakeFoodLoader{foods: map[uuid.UUID]*models.Food{food.ID: food}},
		users: &fakeUserLoader{user: &models.User{ID: userID}},
		discounts: &fakeEvaluator{best: &discount.AppliedDiscount{
			DiscountID: uuid.New(),
			Title:      "summer promo",
			Value:      decimal.RequireFromString("10"),
			Amount:     decimal.RequireFromString("100.00"),
		}},
	}

	quote, err := svc.Quote(context.Background(), &userID, CreateOrderInput{
		Items: []LineItemInput{
			{FoodID: food.ID, SizeID: food.SizesAndPrices[0].ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if !quote.Subtotal.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("expected subtotal 1000.00, got %s", quote.Subtotal)
	}
	if quote.Weight != 900 {
		t.Fatalf("expected weight 900, got %d", quote.Weight)
	}
	if quote.Discount == nil || quote.Discount.Title != "summer promo" {
		t.Fatal("expected discount applied")
	}
	if !quote.Total.Equal(decimal.RequireFromString("900.00")) {
		t.Fatalf("expected total 900.00, got %s", quote.Total)
	}
}

func TestQuoteWithoutDiscountKeepsSubtotal(t *testing.T) {
	food := testFood("300.00", 400)

	svc := &service{
		foods:     &fakeFoodLoader{foods: map[uuid.UUID]*models.Food{food.ID: food}},
		users:     &fakeUserLoader{},
		discounts: &fakeEvaluator{},
	}

	quote, err := svc.Quote(context.Background(), nil, CreateOrderInput{
		Items: []LineItemInput{
			{FoodID: food.ID, SizeID: food.SizesAndPrices[0].ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Discount != nil {
		t.Fatal("expected no discount")
	}
	if !quote.Total.Equal(quote.Subtotal) {
		t.Fatalf("expected total %s to equal subtotal %s", quote.Total, quote.Subtotal)
	}
}

func TestQuoteIncludesAdditions(t *testing.T) {
	food := testFood("300.00", 400)

	svc := &service{
		foods:     &fakeFoodLoader{foods: map[uuid.UUID]*models.Food{food.ID: food}},
		users:     &fakeUserLoader{},
		discounts: &fakeEvaluator{},
	}

	quote, err := svc.Quote(context.Background(), nil, CreateOrderInput{
		Items: []LineItemInput{
			{
				FoodID:   food.ID,
				SizeID:   food.SizesAndPrices[0].ID,
				Quantity: 1,
				Additions: []AdditionSelectionInput{
					{AdditionID: food.AcceptedAdditions[0].ID, Quantity: 2},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.Subtotal.Equal(decimal.RequireFromString("400.00")) {
		t.Fatalf("expected subtotal 400.00, got %s", quote.Subtotal)
	}
}

func TestBuildOrderValidations(t *testing.T) {
	food := testFood("300.00", 400)
	inactive := testFood("300.00", 400)
	inactive.Active = false

	svc := &service{
		foods: &fakeFoodLoader{foods: map[uuid.UUID]*models.Food{
			food.ID:     food,
			inactive.ID: inactive,
		}},
		users:     &fakeUserLoader{},
		discounts: &fakeEvaluator{},
	}
	ctx := context.Background()

	if _, err := svc.buildOrder(ctx, nil, CreateOrderInput{}); err == nil {
		t.Fatal("expected validation error for empty order")
	}

	_, err := svc.buildOrder(ctx, nil, CreateOrderInput{
		Items: []LineItemInput{{FoodID: inactive.ID, SizeID: inactive.SizesAndPrices[0].ID}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for inactive food, got %v", err)
	}

	_, err = svc.buildOrder(ctx, nil, CreateOrderInput{
		Items: []LineItemInput{{FoodID: food.ID, SizeID: uuid.New()}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown size, got %v", err)
	}

	_, err = svc.buildOrder(ctx, nil, CreateOrderInput{
		Items: []LineItemInput{{
			FoodID:    food.ID,
			SizeID:    food.SizesAndPrices[0].ID,
			Additions: []AdditionSelectionInput{{AdditionID: uuid.New()}},
		}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unaccepted addition, got %v", err)
	}
}
