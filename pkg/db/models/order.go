package models

import (
	"time"

	"github.com/google/uuid"
)

// Order owns its line items for the lifetime of a purchase.
type Order struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID      `gorm:"column:user_id;type:uuid"`
	AddressID *uuid.UUID      `gorm:"column:address_id;type:uuid"`
	Address   *Address        `gorm:"foreignKey:AddressID"`
	Items     []OrderLineItem `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
