package discount

import (
	"time"

	"github.com/aidosmk/food-delivery-backend/internal/pricing"
	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

// ConditionMatches evaluates every set predicate of the condition against
// the order summary and user; all must hold. An unset predicate never
// constrains, so a fully empty condition matches any order. A nil user
// fails every user-facing predicate without erroring.
func ConditionMatches(cond *models.DiscountCondition, summary pricing.OrderSummary, user *models.User, at time.Time) bool {
	if cond == nil {
		return true
	}

	if cond.MinOrderPrice != nil && summary.Subtotal.LessThan(*cond.MinOrderPrice) {
		return false
	}
	if cond.MinOrderWeight != nil && summary.Weight < *cond.MinOrderWeight {
		return false
	}
	if len(cond.FoodCategories) > 0 && !intersectsCategories(cond.FoodCategories, summary) {
		return false
	}
	if len(cond.Foods) > 0 && !intersectsFoods(cond.Foods, summary) {
		return false
	}
	if cond.FoodSize != nil && !summary.HasSizeCode(*cond.FoodSize) {
		return false
	}
	if len(cond.UserRoles) > 0 && !hasAnyRole(user, cond.UserRoles) {
		return false
	}
	if cond.DiscountCard && (user == nil || !user.HasDiscountCard) {
		return false
	}
	if cond.Birthday && !user.IsBirthdayOn(at) {
		return false
	}

	return true
}

func intersectsCategories(categories []models.FoodCategory, summary pricing.OrderSummary) bool {
	for i := range categories {
		if summary.HasCategory(categories[i].ID) {
			return true
		}
	}
	return false
}

func intersectsFoods(foods []models.Food, summary pricing.OrderSummary) bool {
	for i := range foods {
		if summary.HasFood(foods[i].ID) {
			return true
		}
	}
	return false
}

func hasAnyRole(user *models.User, roles []string) bool {
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}
