package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS addresses (
  id TEXT PRIMARY KEY,
  line TEXT NOT NULL,
  is_primary INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  image TEXT,
  category_id TEXT,
  cooking_time_minutes INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_by_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS sizes_and_prices (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  size INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL,
  weight INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE TABLE IF NOT EXISTS additions (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  image TEXT
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  address_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  food_id TEXT NOT NULL,
  size_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1
);`,
		`CREATE TABLE IF NOT EXISTS addition_selections (
  id TEXT PRIMARY KEY,
  line_item_id TEXT NOT NULL,
  addition_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newFood(t *testing.T, db *gorm.DB, title string) *models.Food {
	t.Helper()

	food := &models.Food{
		ID:    uuid.New(),
		Title: title,
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func newSize(t *testing.T, db *gorm.DB, title string, price string, weight int) *models.SizeAndPrice {
	t.Helper()

	size := &models.SizeAndPrice{
		ID:     uuid.New(),
		Title:  title,
		Price:  decimal.RequireFromString(price),
		Weight: weight,
	}
	require.NoError(t, db.Create(size).Error)
	return size
}

func newOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, food *models.Food, size *models.SizeAndPrice, qty int, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    &userID,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderLineItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		FoodID:   food.ID,
		SizeID:   size.ID,
		Quantity: qty,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryListByUser_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	food := newFood(t, db, "Margherita")
	size := newSize(t, db, "Medium", "9.50", 450)

	now := time.Now().UTC()
	older := newOrder(t, db, userID, food, size, 2, now.Add(-time.Hour))
	newer := newOrder(t, db, userID, food, size, 1, now)
	newOrder(t, db, uuid.New(), food, size, 3, now) // someone else's order

	first, cursor, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, newer.ID, first[0].ID)
	assert.NotEmpty(t, cursor)
	require.Len(t, first[0].Items, 1)
	assert.Equal(t, "Margherita", first[0].Items[0].Food.Title)

	second, next, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.ID, second[0].ID)
	assert.Empty(t, next)
}

func TestRepositoryListByUser_rejectsBadCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, _, err := repo.ListByUser(context.Background(), uuid.New(), pagination.Params{Limit: 5, Cursor: "not-a-cursor"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRepositoryFindByID_preloadsAssociations(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	food := newFood(t, db, "Pepperoni")
	size := newSize(t, db, "Large", "12.00", 600)
	order := newOrder(t, db, userID, food, size, 1, time.Now().UTC())

	addition := &models.Addition{
		ID:    uuid.New(),
		Title: "Extra cheese",
		Price: decimal.RequireFromString("1.50"),
	}
	require.NoError(t, db.Create(addition).Error)

	var item models.OrderLineItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	selection := &models.AdditionSelection{
		ID:         uuid.New(),
		LineItemID: item.ID,
		AdditionID: addition.ID,
		Quantity:   2,
	}
	require.NoError(t, db.Create(selection).Error)

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Pepperoni", found.Items[0].Food.Title)
	assert.Equal(t, "Large", found.Items[0].Size.Title)
	require.Len(t, found.Items[0].Additions, 1)
	assert.Equal(t, "Extra cheese", found.Items[0].Additions[0].Addition.Title)
	assert.Equal(t, 2, found.Items[0].Additions[0].Quantity)
}

func TestRepositoryFindByID_notFound(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
