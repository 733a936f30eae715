package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

// Service exposes catalog management operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

	CreateFood(ctx context.Context, input CreateFoodInput) (*FoodDTO, error)
	UpdateFood(ctx context.Context, foodID uuid.UUID, input UpdateFoodInput) (*FoodDTO, error)
	GetFood(ctx context.Context, foodID uuid.UUID) (*FoodDTO, error)
	ListFoods(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]FoodDTO, error)
	DeleteFood(ctx context.Context, foodID uuid.UUID) error

	CreateAddition(ctx context.Context, input CreateAdditionInput) (*AdditionDTO, error)
	ListAdditions(ctx context.Context) ([]AdditionDTO, error)
	CreateSize(ctx context.Context, input CreateSizeInput) (*SizeDTO, error)
	ListSizes(ctx context.Context) ([]SizeDTO, error)

	// Readers used by the discount engine to resolve condition targets and
	// by the order and feedback services to load full food rows.
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.FoodCategory, error)
	FindFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Food, error)
	FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error)
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	logg     *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dbClient: dbClient, logg: logg}, nil
}

// CreateCategory validates and persists a category.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category title is required")
	}
	category := &models.FoodCategory{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Image:       input.Image,
	}
	if _, err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return toCategoryDTO(category), nil
}

// ListCategories returns the full category list.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	counts, err := s.repo.CountFoodsByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting foods")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dto := toCategoryDTO(&rows[i])
		dto.FoodsCount = counts[rows[i].ID]
		out = append(out, *dto)
	}
	return out, nil
}

// DeleteCategory removes a category.
func (s *service) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, categoryID)
}

// CreateFood persists the food together with its size and addition links.
func (s *service) CreateFood(ctx context.Context, input CreateFoodInput) (*FoodDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food title is required")
	}
	if input.CookingTimeMinutes < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cooking time cannot be negative")
	}
	if len(input.SizeIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food needs at least one size")
	}

	sizes, err := s.resolveSizes(ctx, input.SizeIDs)
	if err != nil {
		return nil, err
	}
	additions, err := s.resolveAdditions(ctx, input.AdditionIDs)
	if err != nil {
		return nil, err
	}

	var created *models.Food
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		food := &models.Food{
			Title:              title,
			Description:        input.Description,
			Image:              input.Image,
			CategoryID:         input.CategoryID,
			CookingTimeMinutes: input.CookingTimeMinutes,
			Active:             true,
			CreatedByID:        input.CreatedByID,
		}
		if _, err := txRepo.CreateFood(ctx, food); err != nil {
			return err
		}
		if err := txRepo.ReplaceFoodLinks(ctx, food, sizes, additions); err != nil {
			return err
		}
		created = food
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating food")
	}

	s.logg.Info(ctx, "food created")
	return s.GetFood(ctx, created.ID)
}

// UpdateFood applies the provided mutations to the food.
func (s *service) UpdateFood(ctx context.Context, foodID uuid.UUID, input UpdateFoodInput) (*FoodDTO, error) {
	food, err := s.repo.FindFoodByID(ctx, foodID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "food title cannot be empty")
		}
		food.Title = title
	}
	if input.Description != nil {
		food.Description = input.Description
	}
	if input.Image != nil {
		food.Image = input.Image
	}
	if input.CategoryID != nil {
		food.CategoryID = input.CategoryID
	}
	if input.CookingTimeMinutes != nil {
		if *input.CookingTimeMinutes < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cooking time cannot be negative")
		}
		food.CookingTimeMinutes = *input.CookingTimeMinutes
	}
	if input.Active != nil {
		food.Active = *input.Active
	}

	var sizes []models.SizeAndPrice
	if input.SizeIDs != nil {
		if len(*input.SizeIDs) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "food needs at least one size")
		}
		sizes, err = s.resolveSizes(ctx, *input.SizeIDs)
		if err != nil {
			return nil, err
		}
	}
	var additions []models.Addition
	if input.AdditionIDs != nil {
		additions, err = s.resolveAdditions(ctx, *input.AdditionIDs)
		if err != nil {
			return nil, err
		}
		if additions == nil {
			additions = []models.Addition{}
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.UpdateFood(ctx, food); err != nil {
			return err
		}
		return txRepo.ReplaceFoodLinks(ctx, food, sizes, additions)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating food")
	}

	return s.GetFood(ctx, foodID)
}

// GetFood loads a single food with its associations.
func (s *service) GetFood(ctx context.Context, foodID uuid.UUID) (*FoodDTO, error) {
	food, err := s.repo.FindFoodByID(ctx, foodID)
	if err != nil {
		return nil, err
	}
	return toFoodDTO(food), nil
}

// ListFoods returns foods, optionally scoped to a category or active set.
func (s *service) ListFoods(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]FoodDTO, error) {
	rows, err := s.repo.ListFoods(ctx, categoryID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing foods")
	}
	out := make([]FoodDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toFoodDTO(&rows[i]))
	}
	return out, nil
}

// DeleteFood removes a food.
func (s *service) DeleteFood(ctx context.Context, foodID uuid.UUID) error {
	return s.repo.DeleteFood(ctx, foodID)
}

// CreateAddition validates and persists an addition.
func (s *service) CreateAddition(ctx context.Context, input CreateAdditionInput) (*AdditionDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addition title is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addition price cannot be negative")
	}
	addition := &models.Addition{
		Title:       title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
	}
	if _, err := s.repo.CreateAddition(ctx, addition); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating addition")
	}
	dto := toAdditionDTO(addition)
	return &dto, nil
}

// ListAdditions returns the full addition list.
func (s *service) ListAdditions(ctx context.Context) ([]AdditionDTO, error) {
	rows, err := s.repo.ListAdditions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing additions")
	}
	out := make([]AdditionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toAdditionDTO(&rows[i]))
	}
	return out, nil
}

// CreateSize validates and persists a size/price entry.
func (s *service) CreateSize(ctx context.Context, input CreateSizeInput) (*SizeDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size title is required")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size price must be positive")
	}
	if input.Weight < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size weight cannot be negative")
	}
	size := &models.SizeAndPrice{
		Title:  strings.TrimSpace(input.Title),
		Size:   input.Size,
		Price:  input.Price,
		Weight: input.Weight,
	}
	if _, err := s.repo.CreateSize(ctx, size); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating size")
	}
	dto := toSizeDTO(size)
	return &dto, nil
}

// ListSizes returns the full size list.
func (s *service) ListSizes(ctx context.Context) ([]SizeDTO, error) {
	rows, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sizes")
	}
	out := make([]SizeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toSizeDTO(&rows[i]))
	}
	return out, nil
}

// FindCategoriesByIDs satisfies the discount service's category reader.
func (s *service) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.FoodCategory, error) {
	return s.repo.FindCategoriesByIDs(ctx, ids)
}

// FindFoodsByIDs satisfies the discount service's food reader.
func (s *service) FindFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Food, error) {
	return s.repo.FindFoodsByIDs(ctx, ids)
}

// FindFoodByID loads a full food row for the order and feedback services.
func (s *service) FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	return s.repo.FindFoodByID(ctx, id)
}

func (s *service) resolveSizes(ctx context.Context, ids []uuid.UUID) ([]models.SizeAndPrice, error) {
	found, err := s.repo.FindSizesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading sizes")
	}
	if len(found) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown size id")
	}
	return found, nil
}

func (s *service) resolveAdditions(ctx context.Context, ids []uuid.UUID) ([]models.Addition, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.repo.FindAdditionsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading additions")
	}
	if len(found) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown addition id")
	}
	return found, nil
}
