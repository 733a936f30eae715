package models

import "github.com/google/uuid"

// OrderLineItem is one ordered food at one size, with optional additions.
type OrderLineItem struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	FoodID    uuid.UUID           `gorm:"column:food_id;type:uuid;not null"`
	Food      *Food               `gorm:"foreignKey:FoodID"`
	SizeID    uuid.UUID           `gorm:"column:size_id;type:uuid;not null"`
	Size      *SizeAndPrice       `gorm:"foreignKey:SizeID"`
	Quantity  int                 `gorm:"column:quantity;not null;default:1"`
	Additions []AdditionSelection `gorm:"foreignKey:LineItemID"`
}
