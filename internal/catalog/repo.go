package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateCategory inserts a food category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.FoodCategory) (*models.FoodCategory, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns every category ordered by title.
func (r *Repository) ListCategories(ctx context.Context) ([]models.FoodCategory, error) {
	var rows []models.FoodCategory
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountFoodsByCategory returns active-food counts keyed by category ID.
func (r *Repository) CountFoodsByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Total      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Food{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IS NOT NULL AND active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}

// FindCategoriesByIDs loads the categories matching the given IDs.
func (r *Repository) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.FoodCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.FoodCategory
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteCategory removes the category row.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FoodCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

// CreateFood inserts the food row.
func (r *Repository) CreateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// UpdateFood persists the full food row.
func (r *Repository) UpdateFood(ctx context.Context, food *models.Food) (*models.Food, error) {
	if err := r.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// ReplaceFoodLinks replaces the size and addition associations of a food.
func (r *Repository) ReplaceFoodLinks(ctx context.Context, food *models.Food, sizes []models.SizeAndPrice, additions []models.Addition) error {
	tx := r.db.WithContext(ctx)
	if sizes != nil {
		if err := tx.Model(food).Association("SizesAndPrices").Replace(sizes); err != nil {
			return err
		}
	}
	if additions != nil {
		if err := tx.Model(food).Association("AcceptedAdditions").Replace(additions); err != nil {
			return err
		}
	}
	return nil
}

// FindFoodByID loads the food with its category, sizes and additions.
func (r *Repository) FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var food models.Food
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SizesAndPrices").
		Preload("AcceptedAdditions").
		First(&food, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
		}
		return nil, err
	}
	return &food, nil
}

// FindFoodsByIDs loads the foods matching the given IDs without associations.
func (r *Repository) FindFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Food, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Food
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFoods returns foods filtered by category and active flag.
func (r *Repository) ListFoods(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]models.Food, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SizesAndPrices").
		Preload("AcceptedAdditions").
		Order("title ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var rows []models.Food
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteFood removes the food row.
func (r *Repository) DeleteFood(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Food{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
	}
	return nil
}

// CreateAddition inserts an addition row.
func (r *Repository) CreateAddition(ctx context.Context, addition *models.Addition) (*models.Addition, error) {
	if err := r.db.WithContext(ctx).Create(addition).Error; err != nil {
		return nil, err
	}
	return addition, nil
}

// ListAdditions returns every addition ordered by title.
func (r *Repository) ListAdditions(ctx context.Context) ([]models.Addition, error) {
	var rows []models.Addition
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAdditionsByIDs loads the additions matching the given IDs.
func (r *Repository) FindAdditionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Addition, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Addition
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateSize inserts a size/price row.
func (r *Repository) CreateSize(ctx context.Context, size *models.SizeAndPrice) (*models.SizeAndPrice, error) {
	if err := r.db.WithContext(ctx).Create(size).Error; err != nil {
		return nil, err
	}
	return size, nil
}

// ListSizes returns every size/price entry ordered by size code.
func (r *Repository) ListSizes(ctx context.Context) ([]models.SizeAndPrice, error) {
	var rows []models.SizeAndPrice
	if err := r.db.WithContext(ctx).Order("size ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindSizesByIDs loads the size entries matching the given IDs.
func (r *Repository) FindSizesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.SizeAndPrice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.SizeAndPrice
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
