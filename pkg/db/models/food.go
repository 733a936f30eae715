package models

import (
	"time"

	"github.com/google/uuid"
)

// Food is a catalog entry with its accepted additions and valid sizes.
type Food struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title              string         `gorm:"column:title;not null"`
	Description        *string        `gorm:"column:description"`
	Image              *string        `gorm:"column:image"`
	CategoryID         *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Category           *FoodCategory  `gorm:"foreignKey:CategoryID"`
	CookingTimeMinutes int            `gorm:"column:cooking_time_minutes;not null;default:0"`
	Active             bool           `gorm:"column:active;not null;default:true"`
	AcceptedAdditions  []Addition     `gorm:"many2many:food_accepted_additions"`
	SizesAndPrices     []SizeAndPrice `gorm:"many2many:food_sizes_and_prices"`
	CreatedByID        *uuid.UUID     `gorm:"column:created_by_id;type:uuid"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
