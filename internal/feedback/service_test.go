package feedback

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

type fakeFoodChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeFoodChecker) FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	if f.known[id] {
		return &models.Food{ID: id}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
}

func TestCreateValidatesInput(t *testing.T) {
	foodID := uuid.New()
	svc := &service{foods: &fakeFoodChecker{known: map[uuid.UUID]bool{foodID: true}}}
	ctx := context.Background()
	userID := uuid.New()

	cases := map[string]CreateFeedbackInput{
		"blank text":   {FoodID: foodID, Rate: 4},
		"rate too low": {FoodID: foodID, Text: "tasty", Rate: 0},
		"rate too big": {FoodID: foodID, Text: "tasty", Rate: 6},
	}
	for name, input := range cases {
		_, err := svc.Create(ctx, userID, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	_, err := svc.Create(ctx, userID, CreateFeedbackInput{FoodID: uuid.New(), Text: "tasty", Rate: 4})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown food, got %v", err)
	}
}

func TestFeedbackDTOFlattensAttachments(t *testing.T) {
	row := &models.FoodFeedback{
		ID:          uuid.New(),
		FoodID:      uuid.New(),
		CreatedByID: uuid.New(),
		Text:        "crispy crust",
		Rate:        5,
		Attachments: []models.Attachment{
			{File: "crust.jpg"},
			{File: "slice.jpg"},
		},
	}

	dto := toFeedbackDTO(row)
	if dto.Text != "crispy crust" || dto.Rate != 5 {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if len(dto.Attachments) != 2 || dto.Attachments[0] != "crust.jpg" {
		t.Fatalf("unexpected attachments %v", dto.Attachments)
	}
}
