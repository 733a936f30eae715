package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a per-order dialogue between two users.
type Chat struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	OwnerID        uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	DialogueWithID uuid.UUID `gorm:"column:dialogue_with_id;type:uuid;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
