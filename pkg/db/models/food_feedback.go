package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodFeedback is a customer review of a food item.
type FoodFeedback struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Text        string       `gorm:"column:text;not null"`
	Rate        float64      `gorm:"column:rate;not null;default:5"`
	FoodID      uuid.UUID    `gorm:"column:food_id;type:uuid;not null"`
	CreatedByID uuid.UUID    `gorm:"column:created_by_id;type:uuid;not null"`
	Attachments []Attachment `gorm:"many2many:food_feedback_attachments"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
}
