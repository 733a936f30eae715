package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// Banner is a promotional image shown within an optional date window.
type Banner struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string             `gorm:"column:title;not null"`
	Image         string             `gorm:"column:image;not null"`
	Status        enums.BannerStatus `gorm:"column:status;not null"`
	ShowDateStart *time.Time         `gorm:"column:show_date_start"`
	ShowDateEnd   *time.Time         `gorm:"column:show_date_end"`
}

// IsVisibleAt reports whether the banner should be shown at the given time.
func (b *Banner) IsVisibleAt(at time.Time) bool {
	if b == nil || b.Status != enums.BannerStatusActive {
		return false
	}
	if b.ShowDateStart != nil && at.Before(*b.ShowDateStart) {
		return false
	}
	if b.ShowDateEnd != nil && at.After(*b.ShowDateEnd) {
		return false
	}
	return true
}
