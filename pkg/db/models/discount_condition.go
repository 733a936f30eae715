package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// DiscountCondition is an all-optional predicate specification. Every unset
// field means "no constraint from this dimension". Conditions may be shared
// by several discounts and are read-only at evaluation time.
type DiscountCondition struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string           `gorm:"column:title;not null"`
	MinOrderPrice  *decimal.Decimal `gorm:"column:min_order_price;type:numeric(10,2)"`
	MinOrderWeight *int             `gorm:"column:min_order_weight"`
	FoodCategories []FoodCategory   `gorm:"many2many:discount_condition_categories"`
	Foods          []Food           `gorm:"many2many:discount_condition_foods"`
	FoodSize       *int             `gorm:"column:food_size"`
	UserRoles      pq.StringArray   `gorm:"column:user_roles;type:text[]"`
	DiscountCard   bool             `gorm:"column:discount_card;not null;default:false"`
	Birthday       bool             `gorm:"column:birthday;not null;default:false"`

	// Admin-informational ordering window ("HH:MM"); not part of the
	// eligibility predicates today.
	OrderingTimeStart *string `gorm:"column:ordering_time_start"`
	OrderingTimeEnd   *string `gorm:"column:ordering_time_end"`
}
