package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidosmk/food-delivery-backend/internal/pricing"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// IsActiveAt reports whether the discount campaign is live at the given
// time: status must be active and the time must fall inside the optional
// StartsAt/ExpiresAt window. An unset bound does not constrain.
func IsActiveAt(d *models.Discount, at time.Time) bool {
	if d == nil || d.Status != enums.DiscountStatusActive {
		return false
	}
	if d.StartsAt != nil && at.Before(*d.StartsAt) {
		return false
	}
	if d.ExpiresAt != nil && at.After(*d.ExpiresAt) {
		return false
	}
	return true
}

// IsApplicable reports whether the discount is live and its condition
// matches the order summary and user. Evaluation is read-only.
func IsApplicable(d *models.Discount, summary pricing.OrderSummary, user *models.User, at time.Time) bool {
	if !IsActiveAt(d, at) {
		return false
	}
	return ConditionMatches(d.Condition, summary, user, at)
}

// Amount returns the money value of the discount for the given pre-discount
// subtotal: subtotal multiplied by the percentage on the 0-100 scale.
func Amount(d *models.Discount, subtotal decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return subtotal.Mul(d.Value).Div(hundred)
}
