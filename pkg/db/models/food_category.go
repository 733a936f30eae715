package models

import "github.com/google/uuid"

// FoodCategory groups foods and serves as a discount targeting dimension.
type FoodCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Image       *string   `gorm:"column:image"`
}
