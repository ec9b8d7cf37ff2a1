package coupon

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Eligibility is a conjunction of optional predicates over the user and cart.
// An absent predicate does not constrain. A nil slice means unrestricted; a
// present-but-empty slice matches nothing, so the coupon never qualifies.
type Eligibility struct {
	AllowedUserTiers     []string
	MinLifetimeSpend     *decimal.Decimal
	MinOrdersPlaced      *int
	FirstOrderOnly       *bool
	AllowedCountries     []string
	MinCartValue         *decimal.Decimal
	ApplicableCategories []string
	ExcludedCategories   []string
	MinItemsCount        *int
}

// Satisfied reports whether every present predicate holds for the given
// user and cart. Evaluation short-circuits on the first failing predicate.
func (e *Eligibility) Satisfied(user UserContext, cart Cart) bool {
	if e == nil {
		return true
	}
	if e.AllowedUserTiers != nil {
		if user.Tier == nil || !slices.Contains(e.AllowedUserTiers, *user.Tier) {
			return false
		}
	}
	if e.MinLifetimeSpend != nil && user.LifetimeSpend.LessThan(*e.MinLifetimeSpend) {
		return false
	}
	if e.MinOrdersPlaced != nil && user.OrdersPlaced < *e.MinOrdersPlaced {
		return false
	}
	if e.FirstOrderOnly != nil && *e.FirstOrderOnly && user.OrdersPlaced != 0 {
		return false
	}
	if e.AllowedCountries != nil {
		if user.Country == nil || !slices.Contains(e.AllowedCountries, *user.Country) {
			return false
		}
	}
	if e.MinCartValue != nil && cart.Value().LessThan(*e.MinCartValue) {
		return false
	}
	if e.ApplicableCategories != nil {
		categories := cart.Categories()
		found := false
		for _, want := range e.ApplicableCategories {
			if _, ok := categories[want]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(e.ExcludedCategories) > 0 {
		categories := cart.Categories()
		for _, banned := range e.ExcludedCategories {
			if _, ok := categories[banned]; ok {
				return false
			}
		}
	}
	if e.MinItemsCount != nil && cart.ItemCount() < *e.MinItemsCount {
		return false
	}
	return true
}
