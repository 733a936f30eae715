package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// RegisterInput holds the validated payload to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Birthday  *time.Time
}

// UpdateProfileInput holds optional mutation values for a profile.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Photo     *string
	Birthday  *time.Time
}

// BanInput describes an administrative ban.
type BanInput struct {
	Reason    string
	ExpiresAt *time.Time
}

// AuthTokens carries the access/refresh pair returned by login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AddressDTO is the API shape of a delivery address.
type AddressDTO struct {
	ID      uuid.UUID `json:"id"`
	Line    string    `json:"line"`
	Primary bool      `json:"primary"`
}

// UserDTO is the API shape of an account.
type UserDTO struct {
	ID              uuid.UUID        `json:"id"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Photo           *string          `json:"photo,omitempty"`
	Birthday        *time.Time       `json:"birthday,omitempty"`
	Status          enums.UserStatus `json:"status"`
	HasDiscountCard bool             `json:"has_discount_card"`
	Roles           []string         `json:"roles"`
	Addresses       []AddressDTO     `json:"addresses,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toAddressDTO(a *models.Address) AddressDTO {
	return AddressDTO{ID: a.ID, Line: a.Line, Primary: a.Primary}
}

func toUserDTO(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		Photo:           u.Photo,
		Birthday:        u.Birthday,
		Status:          u.Status,
		HasDiscountCard: u.HasDiscountCard,
		Roles:           u.Roles,
		CreatedAt:       u.CreatedAt,
	}
	for i := range u.Addresses {
		dto.Addresses = append(dto.Addresses, toAddressDTO(&u.Addresses[i]))
	}
	return dto
}
