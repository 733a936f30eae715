package models

import "github.com/google/uuid"

// Address is a delivery destination.
type Address struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Line    string    `gorm:"column:line;not null"`
	Primary bool      `gorm:"column:is_primary;not null;default:false"`
}
