package banner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

// CreateBannerInput holds the validated payload to create a banner.
type CreateBannerInput struct {
	Title         string
	Image         string
	Status        enums.BannerStatus
	ShowDateStart *time.Time
	ShowDateEnd   *time.Time
}

// BannerDTO is the API shape of a banner.
type BannerDTO struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Image         string             `json:"image"`
	Status        enums.BannerStatus `json:"status"`
	ShowDateStart *time.Time         `json:"show_date_start,omitempty"`
	ShowDateEnd   *time.Time         `json:"show_date_end,omitempty"`
}

// Service exposes banner management and the public visible feed.
type Service interface {
	Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error)
	ListVisible(ctx context.Context) ([]BannerDTO, error)
	ListAll(ctx context.Context) ([]BannerDTO, error)
	SetStatus(ctx context.Context, bannerID uuid.UUID, status enums.BannerStatus) error
	Delete(ctx context.Context, bannerID uuid.UUID) error
}

// service implements the banner service.
type service struct {
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs a banner service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banner repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// Create validates and persists a banner.
func (s *service) Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner title is required")
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner image is required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", input.Status))
	}
	if input.ShowDateStart != nil && input.ShowDateEnd != nil && !input.ShowDateEnd.After(*input.ShowDateStart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "show_date_end must be after show_date_start")
	}

	banner := &models.Banner{
		Title:         strings.TrimSpace(input.Title),
		Image:         input.Image,
		Status:        input.Status,
		ShowDateStart: input.ShowDateStart,
		ShowDateEnd:   input.ShowDateEnd,
	}
	if _, err := s.repo.Create(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating banner")
	}
	return toBannerDTO(banner), nil
}

// ListVisible returns banners that should be shown right now.
func (s *service) ListVisible(ctx context.Context) ([]BannerDTO, error) {
	rows, err := s.repo.ListByStatus(ctx, enums.BannerStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing banners")
	}
	now := s.now()
	out := make([]BannerDTO, 0, len(rows))
	for i := range rows {
		if rows[i].IsVisibleAt(now) {
			out = append(out, *toBannerDTO(&rows[i]))
		}
	}
	return out, nil
}

// ListAll returns every banner for admin screens.
func (s *service) ListAll(ctx context.Context) ([]BannerDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing banners")
	}
	out := make([]BannerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toBannerDTO(&rows[i]))
	}
	return out, nil
}

// SetStatus flips the banner status.
func (s *service) SetStatus(ctx context.Context, bannerID uuid.UUID, status enums.BannerStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}
	banner, err := s.repo.FindByID(ctx, bannerID)
	if err != nil {
		return err
	}
	banner.Status = status
	if _, err := s.repo.Update(ctx, banner); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating banner")
	}
	return nil
}

// Delete removes the banner.
func (s *service) Delete(ctx context.Context, bannerID uuid.UUID) error {
	return s.repo.Delete(ctx, bannerID)
}

func toBannerDTO(b *models.Banner) *BannerDTO {
	if b == nil {
		return nil
	}
	return &BannerDTO{
		ID:            b.ID,
		Title:         b.Title,
		Image:         b.Image,
		Status:        b.Status,
		ShowDateStart: b.ShowDateStart,
		ShowDateEnd:   b.ShowDateEnd,
	}
}

// Repository wires together banner persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the banner row.
func (r *Repository) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// Update persists the full banner row.
func (r *Repository) Update(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// FindByID loads a single banner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, err
	}
	return &banner, nil
}

// ListByStatus returns banners with the given status.
func (r *Repository) ListByStatus(ctx context.Context, status enums.BannerStatus) ([]models.Banner, error) {
	var rows []models.Banner
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every banner.
func (r *Repository) ListAll(ctx context.Context) ([]models.Banner, error) {
	var rows []models.Banner
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the banner row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
	}
	return nil
}
