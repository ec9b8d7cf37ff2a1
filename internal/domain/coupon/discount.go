package coupon

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Discount computes the discount amount for the given cart value without
// rounding; callers round at the boundary. FLAT discounts never exceed the
// cart value. PERCENT discounts are capped by maxDiscountAmount when set.
func (c *Coupon) Discount(cartValue decimal.Decimal) decimal.Decimal {
	switch c.discountType {
	case DiscountFlat:
		return decimal.Min(cartValue, c.discountValue)
	case DiscountPercent:
		amount := c.discountValue.Mul(cartValue).Div(hundred)
		if c.maxDiscountAmount != nil {
			amount = decimal.Min(amount, *c.maxDiscountAmount)
		}
		return amount
	default:
		return decimal.Zero
	}
}
