package user

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
)

func TestValidateRegisterInput(t *testing.T) {
	valid := RegisterInput{
		FirstName: "Aigerim",
		LastName:  "Bekova",
		Email:     "aigerim@example.com",
		Password:  "long-enough",
	}
	if err := validateRegisterInput(valid); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}

	cases := map[string]RegisterInput{
		"blank first name": {LastName: "Bekova", Email: "a@example.com", Password: "long-enough"},
		"blank last name":  {FirstName: "Aigerim", Email: "a@example.com", Password: "long-enough"},
		"bad email":        {FirstName: "Aigerim", LastName: "Bekova", Email: "nope", Password: "long-enough"},
		"short password":   {FirstName: "Aigerim", LastName: "Bekova", Email: "a@example.com", Password: "short"},
	}
	for name, input := range cases {
		err := validateRegisterInput(input)
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation code, got %v", name, err)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}

func TestPrimaryRolePicksMostPrivileged(t *testing.T) {
	admin := &models.User{Roles: pq.StringArray{"customer", "admin"}}
	if got := primaryRole(admin); got != enums.UserRoleAdmin {
		t.Fatalf("expected admin, got %s", got)
	}

	courier := &models.User{Roles: pq.StringArray{"courier"}}
	if got := primaryRole(courier); got != enums.UserRoleCourier {
		t.Fatalf("expected courier, got %s", got)
	}

	// No stored roles still yields a usable claim.
	if got := primaryRole(&models.User{}); got != enums.UserRoleCustomer {
		t.Fatalf("expected customer fallback, got %s", got)
	}
}

func TestEnsureNotBanned(t *testing.T) {
	now := time.Now()

	active := &models.User{Status: enums.UserStatusActive}
	if err := ensureNotBanned(active, now); err != nil {
		t.Fatalf("expected active user to pass, got %v", err)
	}

	banned := &models.User{Status: enums.UserStatusBanned}
	err := ensureNotBanned(banned, now)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	// An expired ban no longer blocks login.
	past := now.Add(-time.Hour)
	expired := &models.User{Status: enums.UserStatusBanned, BanExpiresAt: &past}
	if err := ensureNotBanned(expired, now); err != nil {
		t.Fatalf("expected expired ban to pass, got %v", err)
	}

	future := now.Add(time.Hour)
	stillBanned := &models.User{Status: enums.UserStatusBanned, BanExpiresAt: &future}
	if err := ensureNotBanned(stillBanned, now); err == nil {
		t.Fatal("expected unexpired ban to block")
	}
}

func TestToUserDTOMapsAddresses(t *testing.T) {
	user := &models.User{
		FirstName:       "Aigerim",
		LastName:        "Bekova",
		Email:           "aigerim@example.com",
		HasDiscountCard: true,
		Roles:           pq.StringArray{"customer"},
		Addresses: []models.Address{
			{Line: "12 Abay Ave", Primary: true},
		},
	}

	dto := toUserDTO(user)
	if dto.Email != user.Email || !dto.HasDiscountCard {
		t.Fatal("expected scalar fields mapped")
	}
	if len(dto.Addresses) != 1 || !dto.Addresses[0].Primary {
		t.Fatalf("expected address mapped, got %v", dto.Addresses)
	}
	if toUserDTO(nil) != nil {
		t.Fatal("expected nil user to map to nil")
	}
}
