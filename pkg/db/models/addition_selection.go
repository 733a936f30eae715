package models

import "github.com/google/uuid"

// AdditionSelection attaches an addition to a line item with its own quantity.
type AdditionSelection struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LineItemID uuid.UUID `gorm:"column:line_item_id;type:uuid;not null"`
	AdditionID uuid.UUID `gorm:"column:addition_id;type:uuid;not null"`
	Addition   *Addition `gorm:"foreignKey:AdditionID"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`
}
