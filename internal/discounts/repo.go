package discount

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
)

// Repository wires together discount and condition persistence.
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

// CreateCondition inserts the condition with its category and food links.
func (r *Repository) CreateCondition(ctx context.Context, cond *models.DiscountCondition) (*models.DiscountCondition, error) {
	if err := r.db.WithContext(ctx).Create(cond).Error; err != nil {
		return nil, err
	}
	return cond, nil
}

// CreateDiscount inserts the discount row.
func (r *Repository) CreateDiscount(ctx context.Context, d *models.Discount) (*models.Discount, error) {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDiscount persists the full discount row.
func (r *Repository) UpdateDiscount(ctx context.Context, d *models.Discount) (*models.Discount, error) {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ReplaceConditionLinks replaces the category and food associations of a condition.
func (r *Repository) ReplaceConditionLinks(ctx context.Context, cond *models.DiscountCondition, categories []models.FoodCategory, foods []models.Food) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(cond).Association("FoodCategories").Replace(categories); err != nil {
		return err
	}
	return tx.Model(cond).Association("Foods").Replace(foods)
}

// FindByID loads the discount with its condition and the condition's targeting sets.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Discount, error) {
	var d models.Discount
	err := r.db.WithContext(ctx).
		Preload("Condition").
		Preload("Condition.FoodCategories").
		Preload("Condition.Foods").
		First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
		}
		return nil, err
	}
	return &d, nil
}

// List returns a page of discounts ordered by creation time descending.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Discount, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	query := r.db.WithContext(ctx).
		Preload("Condition").
		Preload("Condition.FoodCategories").
		Preload("Condition.Foods").
		Order("created_at DESC, id DESC").
		Limit(limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Discount
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	var next string
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// ListActiveCandidates returns discounts whose status is active and whose
// window (when set) contains the given time, with conditions preloaded.
// Window bounds are also enforced in memory by the engine; the query just
// keeps the candidate set small.
func (r *Repository) ListActiveCandidates(ctx context.Context, at time.Time) ([]models.Discount, error) {
	var rows []models.Discount
	err := r.db.WithContext(ctx).
		Preload("Condition").
		Preload("Condition.FoodCategories").
		Preload("Condition.Foods").
		Where("status = ?", "active").
		Where("starts_at IS NULL OR starts_at <= ?", at).
		Where("expires_at IS NULL OR expires_at >= ?", at).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the discount row. The condition is kept; conditions may be
// shared across discounts.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Discount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
	}
	return nil
}
