package discount

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
)

func beginTestTx(t *testing.T) *gorm.DB {
	t.Helper()
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}

func mustCreateCategory(t *testing.T, tx *gorm.DB) *models.FoodCategory {
	t.Helper()
	category := &models.FoodCategory{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("category-%s", uuid.NewString()[:8]),
		Description: "test category",
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateDiscount(t *testing.T, repo *Repository, status enums.DiscountStatus, value string, startsAt, expiresAt *time.Time, cond *models.DiscountCondition) *models.Discount {
	t.Helper()
	ctx := context.Background()
	if cond == nil {
		cond = &models.DiscountCondition{ID: uuid.New(), Title: "any order"}
	}
	if cond.ID == uuid.Nil {
		cond.ID = uuid.New()
	}
	if _, err := repo.CreateCondition(ctx, cond); err != nil {
		t.Fatalf("create condition: %v", err)
	}
	d := &models.Discount{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("promo-%s", uuid.NewString()[:8]),
		Description: "test promo",
		ConditionID: cond.ID,
		Status:      status,
		Value:       decimal.RequireFromString(value),
		StartsAt:    startsAt,
		ExpiresAt:   expiresAt,
	}
	if _, err := repo.CreateDiscount(ctx, d); err != nil {
		t.Fatalf("create discount: %v", err)
	}
	return d
}

func TestRepositoryFindByIDPreloadsCondition(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	category := mustCreateCategory(t, tx)
	cond := &models.DiscountCondition{
		ID:             uuid.New(),
		Title:          "pizza lovers",
		FoodCategories: []models.FoodCategory{*category},
	}
	created := mustCreateDiscount(t, repo, enums.DiscountStatusActive, "15", nil, nil, cond)

	loaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find discount: %v", err)
	}
	if loaded.Condition == nil {
		t.Fatal("expected condition preloaded")
	}
	if len(loaded.Condition.FoodCategories) != 1 || loaded.Condition.FoodCategories[0].ID != category.ID {
		t.Fatalf("expected category link preserved, got %v", loaded.Condition.FoodCategories)
	}

	_, err = repo.FindByID(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRepositoryListActiveCandidates(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()
	now := time.Now()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	longGone := now.Add(-2 * time.Hour)

	live := mustCreateDiscount(t, repo, enums.DiscountStatusActive, "10", &past, &future, nil)
	open := mustCreateDiscount(t, repo, enums.DiscountStatusActive, "5", nil, nil, nil)
	expired := mustCreateDiscount(t, repo, enums.DiscountStatusActive, "20", &longGone, &past, nil)
	inactive := mustCreateDiscount(t, repo, enums.DiscountStatusInactive, "30", nil, nil, nil)

	rows, err := repo.ListActiveCandidates(ctx, now)
	if err != nil {
		t.Fatalf("list active candidates: %v", err)
	}

	byID := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		byID[row.ID] = true
		if row.Condition == nil {
			t.Fatalf("expected condition preloaded on %s", row.ID)
		}
	}
	if !byID[live.ID] || !byID[open.ID] {
		t.Fatal("expected live and open-window discounts in the candidate set")
	}
	if byID[expired.ID] {
		t.Fatal("expected expired discount excluded")
	}
	if byID[inactive.ID] {
		t.Fatal("expected inactive discount excluded")
	}
}

func TestRepositoryListPaginates(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreateDiscount(t, repo, enums.DiscountStatusActive, "10", nil, nil, nil)
	}

	first, cursor, err := repo.List(ctx, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(first))
	}
	if cursor == "" {
		t.Fatal("expected next cursor on first page")
	}

	second, _, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: cursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(second) == 0 {
		t.Fatal("expected rows on second page")
	}
	for _, row := range second {
		if row.ID == first[0].ID || row.ID == first[1].ID {
			t.Fatal("expected no overlap between pages")
		}
	}
}

func TestRepositoryDelete(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	created := mustCreateDiscount(t, repo, enums.DiscountStatusActive, "10", nil, nil, nil)

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete discount: %v", err)
	}
	err := repo.Delete(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
