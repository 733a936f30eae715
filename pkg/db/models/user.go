package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// User is a customer or staff account.
type User struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName       string           `gorm:"column:first_name;not null"`
	LastName        string           `gorm:"column:last_name;not null"`
	Email           string           `gorm:"column:email;not null;uniqueIndex"`
	Phone           string           `gorm:"column:phone;not null"`
	PasswordHash    string           `gorm:"column:password_hash;not null"`
	Photo           *string          `gorm:"column:photo"`
	Birthday        *time.Time       `gorm:"column:birthday;type:date"`
	Status          enums.UserStatus `gorm:"column:status;not null;default:'inactive'"`
	BanReason       *string          `gorm:"column:ban_reason"`
	BanExpiresAt    *time.Time       `gorm:"column:ban_expires_at"`
	HasDiscountCard bool             `gorm:"column:has_discount_card;not null;default:false"`
	Roles           pq.StringArray   `gorm:"column:roles;type:text[]"`
	Addresses       []Address        `gorm:"many2many:user_addresses"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// IsBirthdayOn reports whether the user's birthday falls on the given day,
// ignoring the birth year.
func (u *User) IsBirthdayOn(day time.Time) bool {
	if u == nil || u.Birthday == nil {
		return false
	}
	return u.Birthday.Month() == day.Month() && u.Birthday.Day() == day.Day()
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, candidate := range u.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}
