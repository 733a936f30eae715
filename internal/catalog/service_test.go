package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

func TestCreateCategoryRequiresTitle(t *testing.T) {
	svc := &service{}

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Title: "   "})
	if err == nil {
		t.Fatal("expected validation error for blank title")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error code, got %v", err)
	}
}

func TestCreateFoodValidatesInput(t *testing.T) {
	svc := &service{}
	ctx := context.Background()

	if _, err := svc.CreateFood(ctx, CreateFoodInput{Title: ""}); err == nil {
		t.Fatal("expected validation error for blank title")
	}
	if _, err := svc.CreateFood(ctx, CreateFoodInput{Title: "Pizza", CookingTimeMinutes: -1}); err == nil {
		t.Fatal("expected validation error for negative cooking time")
	}
	if _, err := svc.CreateFood(ctx, CreateFoodInput{Title: "Pizza", CookingTimeMinutes: 20}); err == nil {
		t.Fatal("expected validation error when no sizes provided")
	}
}

func TestCreateAdditionValidatesPrice(t *testing.T) {
	svc := &service{}

	_, err := svc.CreateAddition(context.Background(), CreateAdditionInput{
		Title: "Cheese",
		Price: decimal.RequireFromString("-1"),
	})
	if err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestCreateSizeValidatesInput(t *testing.T) {
	svc := &service{}
	ctx := context.Background()

	if _, err := svc.CreateSize(ctx, CreateSizeInput{Title: "", Price: decimal.RequireFromString("10")}); err == nil {
		t.Fatal("expected validation error for blank title")
	}
	if _, err := svc.CreateSize(ctx, CreateSizeInput{Title: "Large", Price: decimal.Zero}); err == nil {
		t.Fatal("expected validation error for zero price")
	}
	if _, err := svc.CreateSize(ctx, CreateSizeInput{Title: "Large", Price: decimal.RequireFromString("10"), Weight: -5}); err == nil {
		t.Fatal("expected validation error for negative weight")
	}
}

func TestToFoodDTOMapsAssociations(t *testing.T) {
	categoryID := uuid.New()
	food := &models.Food{
		ID:                 uuid.New(),
		Title:              "Margherita",
		CategoryID:         &categoryID,
		Category:           &models.FoodCategory{ID: categoryID, Title: "Pizza"},
		CookingTimeMinutes: 25,
		Active:             true,
		SizesAndPrices: []models.SizeAndPrice{
			{ID: uuid.New(), Title: "Medium", Size: 2, Price: decimal.RequireFromString("450.00"), Weight: 500},
		},
		AcceptedAdditions: []models.Addition{
			{ID: uuid.New(), Title: "Extra cheese", Price: decimal.RequireFromString("50.00")},
		},
	}

	dto := toFoodDTO(food)
	if dto.Category == nil || dto.Category.Title != "Pizza" {
		t.Fatal("expected category mapped")
	}
	if len(dto.Sizes) != 1 || dto.Sizes[0].Size != 2 {
		t.Fatalf("expected size mapped, got %v", dto.Sizes)
	}
	if len(dto.Additions) != 1 || dto.Additions[0].Title != "Extra cheese" {
		t.Fatalf("expected addition mapped, got %v", dto.Additions)
	}

	if toFoodDTO(nil) != nil {
		t.Fatal("expected nil food to map to nil")
	}
}
