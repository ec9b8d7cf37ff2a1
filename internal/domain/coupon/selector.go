package coupon

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Candidate pairs a coupon with the requesting user's redemption count.
type Candidate struct {
	Coupon *Coupon
	Used   int
}

// Selection is a ranked winner: the coupon plus its discount amount rounded
// to two decimal places.
type Selection struct {
	Coupon *Coupon
	Amount decimal.Decimal
}

// SelectBest evaluates every candidate against the user and cart at the given
// instant and returns the single best applicable coupon, or nil when none
// qualify. A candidate qualifies when it is inside its date window, under its
// per-user usage limit, eligible, and yields a positive discount. Ranking is
// by higher rounded amount, then earlier end date, then lexicographically
// smaller code, which makes the winner deterministic for any input order.
func SelectBest(candidates []Candidate, user UserContext, cart Cart, now time.Time) *Selection {
	cartValue := cart.Value()

	applicable := make([]Selection, 0, len(candidates))
	for _, cand := range candidates {
		cpn := cand.Coupon
		if !cpn.WithinDateWindow(now) {
			continue
		}
		if !cpn.WithinUsageLimit(cand.Used) {
			continue
		}
		if !cpn.Eligible(user, cart) {
			continue
		}
		amount := cpn.Discount(cartValue)
		if !amount.IsPositive() {
			continue
		}
		applicable = append(applicable, Selection{Coupon: cpn, Amount: amount.Round(2)})
	}
	if len(applicable) == 0 {
		return nil
	}

	sort.Slice(applicable, func(i, j int) bool {
		a, b := applicable[i], applicable[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		if !a.Coupon.EndDate().Equal(b.Coupon.EndDate()) {
			return a.Coupon.EndDate().Before(b.Coupon.EndDate())
		}
		return a.Coupon.Code() < b.Coupon.Code()
	})

	best := applicable[0]
	return &best
}
