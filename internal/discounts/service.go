package discount

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/internal/pricing"
	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/metrics"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
	redisclient "github.com/aidosmk/food-delivery-backend/pkg/redis"
)

const orderingTimeLayout = "15:04"

// Service exposes discount management and order eligibility evaluation.
type Service interface {
	CreateDiscount(ctx context.Context, input CreateDiscountInput) (*DiscountDTO, error)
	UpdateDiscount(ctx context.Context, discountID uuid.UUID, input UpdateDiscountInput) (*DiscountDTO, error)
	GetDiscount(ctx context.Context, discountID uuid.UUID) (*DiscountDTO, error)
	ListDiscounts(ctx context.Context, params pagination.Params) (*DiscountListResult, error)
	DeleteDiscount(ctx context.Context, discountID uuid.UUID) error
	EligibleDiscounts(ctx context.Context, order *models.Order, user *models.User) ([]AppliedDiscount, error)
	BestDiscount(ctx context.Context, order *models.Order, user *models.User) (*AppliedDiscount, error)
}

type categoryReader interface {
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.FoodCategory, error)
}

type foodReader interface {
	FindFoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Food, error)
}

// service implements the discount service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	catalog  categoryReader
	foods    foodReader
	cache    *activeSetCache
	metrics  *metrics.DiscountMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// Options carries the optional collaborators of the service.
type Options struct {
	Cache    redisclient.CacheStore
	CacheTTL time.Duration
	Metrics  *metrics.DiscountMetrics
	Now      func() time.Time
}

// NewService constructs a discount service instance.
func NewService(repo *Repository, dbClient *db.Client, catalog categoryReader, foods foodReader, logg *logger.Logger, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("category reader required")
	}
	if foods == nil {
		return nil, fmt.Errorf("food reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		catalog:  catalog,
		foods:    foods,
		cache:    newActiveSetCache(opts.Cache, opts.CacheTTL),
		metrics:  opts.Metrics,
		logg:     logg,
		now:      now,
	}, nil
}

// CreateDiscount validates and persists a discount together with its condition.
func (s *service) CreateDiscount(ctx context.Context, input CreateDiscountInput) (*DiscountDTO, error) {
	if err := validateValue(input.Value); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", input.Status))
	}
	if err := validateWindow(input.StartsAt, input.ExpiresAt); err != nil {
		return nil, err
	}
	if err := validateConditionInput(input.Condition); err != nil {
		return nil, err
	}

	categories, foods, err := s.resolveTargets(ctx, input.Condition)
	if err != nil {
		return nil, err
	}

	var created *models.Discount
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cond := conditionFromInput(input.Condition)
		cond.FoodCategories = categories
		cond.Foods = foods
		if _, err := txRepo.CreateCondition(ctx, cond); err != nil {
			return err
		}

		d := &models.Discount{
			Title:       input.Title,
			Description: input.Description,
			BannerID:    input.BannerID,
			ConditionID: cond.ID,
			Status:      input.Status,
			Value:       input.Value,
			StartsAt:    input.StartsAt,
			ExpiresAt:   input.ExpiresAt,
		}
		if _, err := txRepo.CreateDiscount(ctx, d); err != nil {
			return err
		}
		d.Condition = cond
		created = d
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating discount")
	}

	s.cache.Invalidate(ctx)
	s.logg.Info(s.logg.WithDiscountID(ctx, created.ID.String()), "discount created")
	return toDiscountDTO(created), nil
}

// UpdateDiscount applies the provided mutations and replaces the condition
// when one is supplied.
func (s *service) UpdateDiscount(ctx context.Context, discountID uuid.UUID, input UpdateDiscountInput) (*DiscountDTO, error) {
	existing, err := s.repo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}

	if input.Value != nil {
		if err := validateValue(*input.Value); err != nil {
			return nil, err
		}
		existing.Value = *input.Value
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
		}
		existing.Status = *input.Status
	}
	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.BannerID != nil {
		existing.BannerID = input.BannerID
	}
	if input.StartsAt != nil {
		existing.StartsAt = input.StartsAt
	}
	if input.ExpiresAt != nil {
		existing.ExpiresAt = input.ExpiresAt
	}
	if err := validateWindow(existing.StartsAt, existing.ExpiresAt); err != nil {
		return nil, err
	}

	var categories []models.FoodCategory
	var foods []models.Food
	if input.Condition != nil {
		if err := validateConditionInput(*input.Condition); err != nil {
			return nil, err
		}
		categories, foods, err = s.resolveTargets(ctx, *input.Condition)
		if err != nil {
			return nil, err
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.Condition != nil {
			cond := conditionFromInput(*input.Condition)
			if _, err := txRepo.CreateCondition(ctx, cond); err != nil {
				return err
			}
			if err := txRepo.ReplaceConditionLinks(ctx, cond, categories, foods); err != nil {
				return err
			}
			existing.ConditionID = cond.ID
			existing.Condition = cond
		}

		_, err := txRepo.UpdateDiscount(ctx, existing)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating discount")
	}

	s.cache.Invalidate(ctx)
	s.logg.Info(s.logg.WithDiscountID(ctx, discountID.String()), "discount updated")
	return toDiscountDTO(existing), nil
}

// GetDiscount loads a single discount with its condition.
func (s *service) GetDiscount(ctx context.Context, discountID uuid.UUID) (*DiscountDTO, error) {
	d, err := s.repo.FindByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	return toDiscountDTO(d), nil
}

// ListDiscounts returns a cursor page of discounts.
func (s *service) ListDiscounts(ctx context.Context, params pagination.Params) (*DiscountListResult, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	result := &DiscountListResult{NextCursor: next}
	for i := range rows {
		result.Discounts = append(result.Discounts, *toDiscountDTO(&rows[i]))
	}
	return result, nil
}

// DeleteDiscount removes the discount and drops the cached active set.
func (s *service) DeleteDiscount(ctx context.Context, discountID uuid.UUID) error {
	if err := s.repo.Delete(ctx, discountID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.logg.Info(s.logg.WithDiscountID(ctx, discountID.String()), "discount deleted")
	return nil
}

// EligibleDiscounts evaluates every active discount against the order and
// returns the eligible ones with their money value. The order's aggregates
// are computed once and reused for every candidate.
func (s *service) EligibleDiscounts(ctx context.Context, order *models.Order, user *models.User) ([]AppliedDiscount, error) {
	started := s.now()

	summary, err := pricing.Summarize(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "summarizing order")
	}

	candidates, source, err := s.activeCandidates(ctx, started)
	if err != nil {
		return nil, err
	}

	var applied []AppliedDiscount
	for i := range candidates {
		d := &candidates[i]
		if IsApplicable(d, summary, user, started) {
			s.metrics.IncEvaluation("eligible")
			applied = append(applied, AppliedDiscount{
				DiscountID: d.ID,
				Title:      d.Title,
				Value:      d.Value,
				Amount:     Amount(d, summary.Subtotal).Round(2),
			})
		} else {
			s.metrics.IncEvaluation("ineligible")
		}
	}

	s.metrics.ObserveEvaluation(source, s.now().Sub(started))
	return applied, nil
}

// BestDiscount returns the single eligible discount with the highest money
// value, or nil when nothing applies. Discounts do not stack.
func (s *service) BestDiscount(ctx context.Context, order *models.Order, user *models.User) (*AppliedDiscount, error) {
	applied, err := s.EligibleDiscounts(ctx, order, user)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, nil
	}
	best := applied[0]
	for _, candidate := range applied[1:] {
		if candidate.Amount.GreaterThan(best.Amount) {
			best = candidate
		}
	}
	s.metrics.IncApplied(best.Title)
	return &best, nil
}

func (s *service) activeCandidates(ctx context.Context, at time.Time) ([]models.Discount, string, error) {
	if rows, ok := s.cache.Get(ctx); ok {
		return rows, "cache", nil
	}
	rows, err := s.repo.ListActiveCandidates(ctx, at)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading active discounts")
	}
	s.cache.Put(ctx, rows)
	return rows, "db", nil
}

func (s *service) resolveTargets(ctx context.Context, input ConditionInput) ([]models.FoodCategory, []models.Food, error) {
	var categories []models.FoodCategory
	if len(input.FoodCategoryIDs) > 0 {
		found, err := s.catalog.FindCategoriesByIDs(ctx, input.FoodCategoryIDs)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading categories")
		}
		if len(found) != len(uniqueIDs(input.FoodCategoryIDs)) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown food category in condition")
		}
		categories = found
	}

	var foods []models.Food
	if len(input.FoodIDs) > 0 {
		found, err := s.foods.FindFoodsByIDs(ctx, input.FoodIDs)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading foods")
		}
		if len(found) != len(uniqueIDs(input.FoodIDs)) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown food in condition")
		}
		foods = found
	}

	return categories, foods, nil
}

func conditionFromInput(input ConditionInput) *models.DiscountCondition {
	return &models.DiscountCondition{
		Title:             input.Title,
		MinOrderPrice:     input.MinOrderPrice,
		MinOrderWeight:    input.MinOrderWeight,
		FoodSize:          input.FoodSize,
		UserRoles:         input.UserRoles,
		DiscountCard:      input.DiscountCard,
		Birthday:          input.Birthday,
		OrderingTimeStart: input.OrderingTimeStart,
		OrderingTimeEnd:   input.OrderingTimeEnd,
	}
}

func validateValue(value decimal.Decimal) error {
	if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value must be in (0, 100]")
	}
	return nil
}

func validateWindow(startsAt, expiresAt *time.Time) error {
	if startsAt != nil && expiresAt != nil && !expiresAt.After(*startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "expires_at must be after starts_at")
	}
	return nil
}

func validateConditionInput(input ConditionInput) error {
	if input.MinOrderPrice != nil && input.MinOrderPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_order_price cannot be negative")
	}
	if input.MinOrderWeight != nil && *input.MinOrderWeight < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_order_weight cannot be negative")
	}
	for _, raw := range []*string{input.OrderingTimeStart, input.OrderingTimeEnd} {
		if raw == nil {
			continue
		}
		if _, err := time.Parse(orderingTimeLayout, *raw); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "ordering time must use HH:MM format")
		}
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
