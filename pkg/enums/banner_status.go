package enums

import "fmt"

// BannerStatus mirrors the promotional banner lifecycle.
type BannerStatus string

const (
	BannerStatusActive    BannerStatus = "active"
	BannerStatusInactive  BannerStatus = "inactive"
	BannerStatusPostponed BannerStatus = "postponed"
)

var validBannerStatuses = []BannerStatus{
	BannerStatusActive,
	BannerStatusInactive,
	BannerStatusPostponed,
}

// String implements fmt.Stringer.
func (b BannerStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BannerStatus.
func (b BannerStatus) IsValid() bool {
	for _, candidate := range validBannerStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBannerStatus converts raw input into a BannerStatus.
func ParseBannerStatus(value string) (BannerStatus, error) {
	for _, candidate := range validBannerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid banner status %q", value)
}
