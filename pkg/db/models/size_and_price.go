package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SizeAndPrice is a size/weight/price triple a food can be ordered in.
// The integer Size is the size code discount conditions match against.
type SizeAndPrice struct {
	ID     uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title  string          `gorm:"column:title;not null"`
	Size   int             `gorm:"column:size;not null;default:0"`
	Price  decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Weight int             `gorm:"column:weight;not null;default:0"`
}

// TableName pins the name GORM would otherwise pluralize as
// size_and_prices; the schema uses sizes_and_prices.
func (SizeAndPrice) TableName() string {
	return "sizes_and_prices"
}
