package feedback

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

// CreateFeedbackInput holds the validated payload to review a food.
type CreateFeedbackInput struct {
	FoodID      uuid.UUID
	Text        string
	Rate        float64
	Attachments []AttachmentInput
}

// AttachmentInput references an uploaded file.
type AttachmentInput struct {
	File string
	Kind enums.AttachmentKind
}

// FeedbackDTO is the API shape of a review.
type FeedbackDTO struct {
	ID          uuid.UUID `json:"id"`
	FoodID      uuid.UUID `json:"food_id"`
	CreatedByID uuid.UUID `json:"created_by_id"`
	Text        string    `json:"text"`
	Rate        float64   `json:"rate"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service exposes food review operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateFeedbackInput) (*FeedbackDTO, error)
	ListForFood(ctx context.Context, foodID uuid.UUID) ([]FeedbackDTO, error)
	AverageRate(ctx context.Context, foodID uuid.UUID) (float64, error)
	Delete(ctx context.Context, userID, feedbackID uuid.UUID, isModerator bool) error
}

type foodChecker interface {
	FindFoodByID(ctx context.Context, id uuid.UUID) (*models.Food, error)
}

// service implements the feedback service.
type service struct {
	repo  *Repository
	foods foodChecker
	logg  *logger.Logger
}

// NewService constructs a feedback service instance.
func NewService(repo *Repository, foods foodChecker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feedback repository required")
	}
	if foods == nil {
		return nil, fmt.Errorf("food checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, foods: foods, logg: logg}, nil
}

// Create validates the review and persists it with its attachments.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateFeedbackInput) (*FeedbackDTO, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "feedback text is required")
	}
	if input.Rate < 1 || input.Rate > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must be between 1 and 5")
	}
	if _, err := s.foods.FindFoodByID(ctx, input.FoodID); err != nil {
		return nil, err
	}

	row := &models.FoodFeedback{
		Text:        strings.TrimSpace(input.Text),
		Rate:        input.Rate,
		FoodID:      input.FoodID,
		CreatedByID: userID,
	}
	for _, attachment := range input.Attachments {
		kind := attachment.Kind
		if !kind.IsValid() {
			kind = enums.AttachmentKindImage
		}
		row.Attachments = append(row.Attachments, models.Attachment{
			File: attachment.File,
			Kind: kind,
		})
	}

	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating feedback")
	}
	return toFeedbackDTO(row), nil
}

// ListForFood returns every review of the food, newest first.
func (s *service) ListForFood(ctx context.Context, foodID uuid.UUID) ([]FeedbackDTO, error) {
	rows, err := s.repo.ListForFood(ctx, foodID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing feedback")
	}
	out := make([]FeedbackDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toFeedbackDTO(&rows[i]))
	}
	return out, nil
}

// AverageRate returns the mean rating of the food, zero when unreviewed.
func (s *service) AverageRate(ctx context.Context, foodID uuid.UUID) (float64, error) {
	return s.repo.AverageRate(ctx, foodID)
}

// Delete removes a review. Authors can delete their own; moderators any.
func (s *service) Delete(ctx context.Context, userID, feedbackID uuid.UUID, isModerator bool) error {
	row, err := s.repo.FindByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if !isModerator && row.CreatedByID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete another user's feedback")
	}
	return s.repo.Delete(ctx, feedbackID)
}

func toFeedbackDTO(f *models.FoodFeedback) *FeedbackDTO {
	if f == nil {
		return nil
	}
	dto := &FeedbackDTO{
		ID:          f.ID,
		FoodID:      f.FoodID,
		CreatedByID: f.CreatedByID,
		Text:        f.Text,
		Rate:        f.Rate,
		CreatedAt:   f.CreatedAt,
	}
	for i := range f.Attachments {
		dto.Attachments = append(dto.Attachments, f.Attachments[i].File)
	}
	return dto
}

// Repository wires together feedback persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the feedback with its attachments.
func (r *Repository) Create(ctx context.Context, row *models.FoodFeedback) (*models.FoodFeedback, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads a single review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FoodFeedback, error) {
	var row models.FoodFeedback
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "feedback not found")
		}
		return nil, err
	}
	return &row, nil
}

// ListForFood returns the food's reviews with attachments, newest first.
func (r *Repository) ListForFood(ctx context.Context, foodID uuid.UUID) ([]models.FoodFeedback, error) {
	var rows []models.FoodFeedback
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("food_id = ?", foodID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AverageRate computes the mean rating in the database.
func (r *Repository) AverageRate(ctx context.Context, foodID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.FoodFeedback{}).
		Select("AVG(rate)").
		Where("food_id = ?", foodID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// Delete removes the review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FoodFeedback{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "feedback not found")
	}
	return nil
}
