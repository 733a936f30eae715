package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/internal/pricing"
	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
)

// Service exposes order quoting and placement.
type Service interface {
	Quote(ctx context.Context, userID *uuid.UUID, input CreateOrderInput) (*QuoteDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]OrderDTO, string, error)
}

type foodLoader interface {
	FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error)
}

type userLoader interface {
	LoadUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type discountEvaluator interface {
	BestDiscount(ctx context.Context, order *models.Order, user *models.User) (*discount.AppliedDiscount, error)
}

// service implements the order service.
type service struct {
	repo      *Repository
	dbClient  *db.Client
	foods     foodLoader
	users     userLoader
	discounts discountEvaluator
	logg      *logger.Logger
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, foods foodLoader, users userLoader, discounts discountEvaluator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if foods == nil {
		return nil, fmt.Errorf("food loader required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount evaluator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		foods:     foods,
		users:     users,
		discounts: discounts,
		logg:      logg,
	}, nil
}

// Quote prices the order without persisting it. An anonymous caller gets a
// quote too; user-facing discount predicates simply fail for them.
func (s *service) Quote(ctx context.Context, userID *uuid.UUID, input CreateOrderInput) (*QuoteDTO, error) {
	order, err := s.buildOrder(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	var user *models.User
	if userID != nil {
		user, err = s.users.LoadUser(ctx, *userID)
		if err != nil {
			return nil, err
		}
	}

	return s.quoteOrder(ctx, order, user)
}

// Create persists the order and returns it together with its quote.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	order, err := s.buildOrder(ctx, &userID, input)
	if err != nil {
		return nil, err
	}

	user, err := s.users.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteOrder(ctx, order, user)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order placed")
	return toOrderDTO(order, quote), nil
}

// Get loads a placed order with a freshly computed quote-less view.
func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order, nil), nil
}

// ListForUser returns a cursor page of the user's orders.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]OrderDTO, string, error) {
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, "", err
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toOrderDTO(&rows[i], nil))
	}
	return out, next, nil
}

// quoteOrder computes the subtotal and weight once, picks the best discount
// and derives the payable total.
func (s *service) quoteOrder(ctx context.Context, order *models.Order, user *models.User) (*QuoteDTO, error) {
	summary, err := pricing.Summarize(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "summarizing order")
	}

	best, err := s.discounts.BestDiscount(ctx, order, user)
	if err != nil {
		return nil, err
	}

	total := summary.Subtotal
	if best != nil {
		total = total.Sub(best.Amount)
	}

	return &QuoteDTO{
		Subtotal: summary.Subtotal,
		Weight:   summary.Weight,
		Discount: best,
		Total:    total,
	}, nil
}

// buildOrder turns the input into a fully-loaded in-memory order, validating
// that each size belongs to its food and each addition is accepted by it.
func (s *service) buildOrder(ctx context.Context, userID *uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		AddressID: input.AddressID,
	}

	for _, item := range input.Items {
		food, err := s.foods.FindFoodByID(ctx, item.FoodID)
		if err != nil {
			return nil, err
		}
		if !food.Active {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("food %q is not available", food.Title))
		}

		size := findSize(food, item.SizeID)
		if size == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size not offered for food %q", food.Title))
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		line := models.OrderLineItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			FoodID:   food.ID,
			Food:     food,
			SizeID:   size.ID,
			Size:     size,
			Quantity: quantity,
		}

		for _, selection := range item.Additions {
			addition := findAddition(food, selection.AdditionID)
			if addition == nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("addition not accepted by food %q", food.Title))
			}
			count := selection.Quantity
			if count < 1 {
				count = 1
			}
			line.Additions = append(line.Additions, models.AdditionSelection{
				ID:         uuid.New(),
				LineItemID: line.ID,
				AdditionID: addition.ID,
				Addition:   addition,
				Quantity:   count,
			})
		}

		order.Items = append(order.Items, line)
	}

	return order, nil
}

func findSize(food *models.Food, sizeID uuid.UUID) *models.SizeAndPrice {
	for i := range food.SizesAndPrices {
		if food.SizesAndPrices[i].ID == sizeID {
			return &food.SizesAndPrices[i]
		}
	}
	return nil
}

func findAddition(food *models.Food, additionID uuid.UUID) *models.Addition {
	for i := range food.AcceptedAdditions {
		if food.AcceptedAdditions[i].ID == additionID {
			return &food.AcceptedAdditions[i]
		}
	}
	return nil
}
