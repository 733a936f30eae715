package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aidosmk/food-delivery-backend/pkg/auth"
	"github.com/aidosmk/food-delivery-backend/pkg/auth/session"
	"github.com/aidosmk/food-delivery-backend/pkg/config"
	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
	"github.com/aidosmk/food-delivery-backend/pkg/security"
)

// Service exposes account, authentication and moderation operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	Login(ctx context.Context, email, password string) (*AuthTokens, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, accessID string) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	AddAddress(ctx context.Context, userID uuid.UUID, line string, primary bool) (*AddressDTO, error)

	ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, string, error)
	BanUser(ctx context.Context, userID uuid.UUID, input BanInput) error
	UnbanUser(ctx context.Context, userID uuid.UUID) error
	SetDiscountCard(ctx context.Context, userID uuid.UUID, hasCard bool) error

	// LoadUser exposes the raw model for discount evaluation.
	LoadUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// service implements the user service.
type service struct {
	repo        *Repository
	dbClient    *db.Client
	sessions    *session.Manager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs a user service instance.
func NewService(repo *Repository, dbClient *db.Client, sessions *session.Manager, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		dbClient:    dbClient,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Register validates the payload and creates an active customer account.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        normalizeEmail(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Birthday:     input.Birthday,
		Status:       enums.UserStatusActive,
		Roles:        pq.StringArray{enums.UserRoleCustomer.String()},
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user registered")
	return toUserDTO(user), nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *service) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if err := ensureNotBanned(user, s.now()); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token and mints a fresh access token.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthTokens, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	access, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &AuthTokens{AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session tied to the access identifier.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoking session")
	}
	return nil
}

// GetProfile loads the caller's profile.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// UpdateProfile applies the provided mutations.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be empty")
		}
		user.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be empty")
		}
		user.LastName = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}

	if _, err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating profile")
	}
	return toUserDTO(user), nil
}

// AddAddress creates a delivery address for the user.
func (s *service) AddAddress(ctx context.Context, userID uuid.UUID, line string, primary bool) (*AddressDTO, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address line is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := &models.Address{Line: line, Primary: primary}
	if err := s.repo.AddAddress(ctx, user, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding address")
	}
	dto := toAddressDTO(address)
	return &dto, nil
}

// ListUsers returns a cursor page of accounts, newest first.
func (s *service) ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, string, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", err
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toUserDTO(&rows[i]))
	}
	return out, next, nil
}

// BanUser marks the account banned with an optional expiry.
func (s *service) BanUser(ctx context.Context, userID uuid.UUID, input BanInput) error {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "ban reason is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Status = enums.UserStatusBanned
	user.BanReason = &reason
	user.BanExpiresAt = input.ExpiresAt

	if _, err := s.repo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "banning user")
	}
	s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "user banned")
	return nil
}

// UnbanUser restores a banned account.
func (s *service) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Status != enums.UserStatusBanned {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "user is not banned")
	}
	user.Status = enums.UserStatusActive
	user.BanReason = nil
	user.BanExpiresAt = nil

	if _, err := s.repo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unbanning user")
	}
	return nil
}

// SetDiscountCard toggles the loyalty card flag.
func (s *service) SetDiscountCard(ctx context.Context, userID uuid.UUID, hasCard bool) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.HasDiscountCard = hasCard
	if _, err := s.repo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating discount card")
	}
	return nil
}

// LoadUser returns the raw user model.
func (s *service) LoadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	accessID := session.NewAccessID()
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating session")
	}

	access, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   primaryRole(user),
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// primaryRole picks the most privileged role the user holds for the JWT.
func primaryRole(user *models.User) enums.UserRole {
	ordered := []enums.UserRole{
		enums.UserRoleAdmin,
		enums.UserRoleManager,
		enums.UserRoleCourier,
		enums.UserRoleCustomer,
	}
	for _, role := range ordered {
		if user.HasRole(role.String()) {
			return role
		}
	}
	return enums.UserRoleCustomer
}

func ensureNotBanned(user *models.User, now time.Time) error {
	if user.Status != enums.UserStatusBanned {
		return nil
	}
	if user.BanExpiresAt != nil && now.After(*user.BanExpiresAt) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "account is banned")
}

func validateRegisterInput(input RegisterInput) error {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "first and last name are required")
	}
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "valid email is required")
	}
	if len(input.Password) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
