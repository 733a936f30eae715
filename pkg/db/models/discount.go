package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// Discount is a promotional campaign. Value is a percentage on the 0-100
// scale. StartsAt/ExpiresAt bound the campaign window when set; the engine
// never mutates a discount.
type Discount struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string               `gorm:"column:title;not null"`
	Description string               `gorm:"column:description;not null"`
	BannerID    *uuid.UUID           `gorm:"column:banner_id;type:uuid"`
	Banner      *Banner              `gorm:"foreignKey:BannerID"`
	ConditionID uuid.UUID            `gorm:"column:condition_id;type:uuid;not null"`
	Condition   *DiscountCondition   `gorm:"foreignKey:ConditionID"`
	Status      enums.DiscountStatus `gorm:"column:status;not null"`
	Value       decimal.Decimal      `gorm:"column:value;type:numeric(5,2);not null"`
	StartsAt    *time.Time           `gorm:"column:starts_at"`
	ExpiresAt   *time.Time           `gorm:"column:expires_at"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
