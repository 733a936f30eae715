package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	"github.com/aidosmk/food-delivery-backend/internal/catalog"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type createCategoryRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type createFoodRequest struct {
	Title              string      `json:"title" validate:"required"`
	Description        *string     `json:"description"`
	Image              *string     `json:"image"`
	CategoryID         *uuid.UUID  `json:"category_id"`
	CookingTimeMinutes int         `json:"cooking_time_minutes" validate:"min=0"`
	SizeIDs            []uuid.UUID `json:"size_ids" validate:"required,min=1"`
	AdditionIDs        []uuid.UUID `json:"addition_ids"`
}

type updateFoodRequest struct {
	Title              *string      `json:"title"`
	Description        *string      `json:"description"`
	Image              *string      `json:"image"`
	CategoryID         *uuid.UUID   `json:"category_id"`
	CookingTimeMinutes *int         `json:"cooking_time_minutes"`
	Active             *bool        `json:"active"`
	SizeIDs            *[]uuid.UUID `json:"size_ids"`
	AdditionIDs        *[]uuid.UUID `json:"addition_ids"`
}

type createAdditionRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
}

type createSizeRequest struct {
	Title  string          `json:"title" validate:"required"`
	Size   int             `json:"size" validate:"min=0"`
	Price  decimal.Decimal `json:"price"`
	Weight int             `json:"weight" validate:"min=0"`
}

func CreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Title:       body.Title,
			Description: body.Description,
			Image:       body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func DeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CreateFood(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createFoodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		creator, err := optionalUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.CreateFood(r.Context(), catalog.CreateFoodInput{
			Title:              body.Title,
			Description:        body.Description,
			Image:              body.Image,
			CategoryID:         body.CategoryID,
			CookingTimeMinutes: body.CookingTimeMinutes,
			SizeIDs:            body.SizeIDs,
			AdditionIDs:        body.AdditionIDs,
			CreatedByID:        creator,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, food)
	}
}

func UpdateFood(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := pathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateFoodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		food, err := svc.UpdateFood(r.Context(), foodID, catalog.UpdateFoodInput{
			Title:              body.Title,
			Description:        body.Description,
			Image:              body.Image,
			CategoryID:         body.CategoryID,
			CookingTimeMinutes: body.CookingTimeMinutes,
			Active:             body.Active,
			SizeIDs:            body.SizeIDs,
			AdditionIDs:        body.AdditionIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, food)
	}
}

func GetFood(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := pathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		food, err := svc.GetFood(r.Context(), foodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, food)
	}
}

// ListFoods serves the public menu. Admin callers can pass all=true to see
// inactive items too.
func ListFoods(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category_id"))
				return
			}
			categoryID = &id
		}

		activeOnly := !strings.EqualFold(r.URL.Query().Get("all"), "true")

		foods, err := svc.ListFoods(r.Context(), categoryID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, foods)
	}
}

func DeleteFood(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := pathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteFood(r.Context(), foodID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CreateAddition(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAdditionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addition, err := svc.CreateAddition(r.Context(), catalog.CreateAdditionInput{
			Title:       body.Title,
			Description: body.Description,
			Price:       body.Price,
			Image:       body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addition)
	}
}

func ListAdditions(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		additions, err := svc.ListAdditions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, additions)
	}
}

func CreateSize(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createSizeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := svc.CreateSize(r.Context(), catalog.CreateSizeInput{
			Title:  body.Title,
			Size:   body.Size,
			Price:  body.Price,
			Weight: body.Weight,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, size)
	}
}

func ListSizes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sizes, err := svc.ListSizes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sizes)
	}
}
