package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Title       string
	Description string
	Image       *string
}

// CreateFoodInput holds the validated payload to create a food.
type CreateFoodInput struct {
	Title              string
	Description        *string
	Image              *string
	CategoryID         *uuid.UUID
	CookingTimeMinutes int
	SizeIDs            []uuid.UUID
	AdditionIDs        []uuid.UUID
	CreatedByID        *uuid.UUID
}

// UpdateFoodInput holds optional mutation values for a food.
type UpdateFoodInput struct {
	Title              *string
	Description        *string
	Image              *string
	CategoryID         *uuid.UUID
	CookingTimeMinutes *int
	Active             *bool
	SizeIDs            *[]uuid.UUID
	AdditionIDs        *[]uuid.UUID
}

// CreateAdditionInput holds the validated payload to create an addition.
type CreateAdditionInput struct {
	Title       string
	Description *string
	Price       decimal.Decimal
	Image       *string
}

// CreateSizeInput holds the validated payload to create a size/price entry.
type CreateSizeInput struct {
	Title  string
	Size   int
	Price  decimal.Decimal
	Weight int
}

// CategoryDTO is the API shape of a food category. FoodsCount is only
// populated on the category listing.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	FoodsCount  int64     `json:"foods_count,omitempty"`
}

// SizeDTO is the API shape of a size/price entry.
type SizeDTO struct {
	ID     uuid.UUID       `json:"id"`
	Title  string          `json:"title"`
	Size   int             `json:"size"`
	Price  decimal.Decimal `json:"price"`
	Weight int             `json:"weight"`
}

// AdditionDTO is the API shape of an addition.
type AdditionDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image,omitempty"`
}

// FoodDTO is the API shape of a food with its sizes and additions.
type FoodDTO struct {
	ID                 uuid.UUID     `json:"id"`
	Title              string        `json:"title"`
	Description        *string       `json:"description,omitempty"`
	Image              *string       `json:"image,omitempty"`
	Category           *CategoryDTO  `json:"category,omitempty"`
	CookingTimeMinutes int           `json:"cooking_time_minutes"`
	Active             bool          `json:"active"`
	Sizes              []SizeDTO     `json:"sizes,omitempty"`
	Additions          []AdditionDTO `json:"additions,omitempty"`
}

func toCategoryDTO(c *models.FoodCategory) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
	}
}

func toSizeDTO(s *models.SizeAndPrice) SizeDTO {
	return SizeDTO{
		ID:     s.ID,
		Title:  s.Title,
		Size:   s.Size,
		Price:  s.Price,
		Weight: s.Weight,
	}
}

func toAdditionDTO(a *models.Addition) AdditionDTO {
	return AdditionDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Price:       a.Price,
		Image:       a.Image,
	}
}

func toFoodDTO(f *models.Food) *FoodDTO {
	if f == nil {
		return nil
	}
	dto := &FoodDTO{
		ID:                 f.ID,
		Title:              f.Title,
		Description:        f.Description,
		Image:              f.Image,
		Category:           toCategoryDTO(f.Category),
		CookingTimeMinutes: f.CookingTimeMinutes,
		Active:             f.Active,
	}
	for i := range f.SizesAndPrices {
		dto.Sizes = append(dto.Sizes, toSizeDTO(&f.SizesAndPrices[i]))
	}
	for i := range f.AcceptedAdditions {
		dto.Additions = append(dto.Additions, toAdditionDTO(&f.AcceptedAdditions[i]))
	}
	return dto
}
