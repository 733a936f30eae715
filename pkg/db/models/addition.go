package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Addition is a priced add-on a line item may carry.
type Addition struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string          `gorm:"column:title;not null"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Image       *string         `gorm:"column:image"`
}
