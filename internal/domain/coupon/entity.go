package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	id                uuid.UUID
	code              Code
	description       string
	discountType      DiscountType
	discountValue     decimal.Decimal
	maxDiscountAmount *decimal.Decimal
	startDate         time.Time
	endDate           time.Time
	usageLimitPerUser *int
	eligibility       *Eligibility
}

func NewCoupon(
	id uuid.UUID,
	rawCode string,
	description string,
	rawType string,
	discountValue decimal.Decimal,
	maxDiscountAmount *decimal.Decimal,
	startDate, endDate time.Time,
	usageLimitPerUser *int,
	eligibility *Eligibility,
) (*Coupon, error) {
	code, err := NewCode(rawCode)
	if err != nil {
		return nil, err
	}
	discountType, err := NewDiscountType(rawType)
	if err != nil {
		return nil, err
	}
	if !discountValue.IsPositive() {
		return nil, ErrInvalidDiscountValue
	}
	if maxDiscountAmount != nil && !maxDiscountAmount.IsPositive() {
		return nil, ErrInvalidMaxDiscount
	}
	startDate = startDate.UTC()
	endDate = endDate.UTC()
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	if usageLimitPerUser != nil && *usageLimitPerUser < 1 {
		return nil, ErrInvalidUsageLimit
	}

	return &Coupon{
		id:                id,
		code:              code,
		description:       description,
		discountType:      discountType,
		discountValue:     discountValue,
		maxDiscountAmount: maxDiscountAmount,
		startDate:         startDate,
		endDate:           endDate,
		usageLimitPerUser: usageLimitPerUser,
		eligibility:       eligibility,
	}, nil
}

// WithinDateWindow reports whether now falls inside [startDate, endDate],
// inclusive at both ends.
func (c *Coupon) WithinDateWindow(now time.Time) bool {
	now = now.UTC()
	return !now.Before(c.startDate) && !now.After(c.endDate)
}

// WithinUsageLimit reports whether a user who has redeemed this coupon
// `used` times may redeem it again. An absent limit never constrains.
func (c *Coupon) WithinUsageLimit(used int) bool {
	if c.usageLimitPerUser == nil {
		return true
	}
	return used < *c.usageLimitPerUser
}

func (c *Coupon) Eligible(user UserContext, cart Cart) bool {
	return c.eligibility.Satisfied(user, cart)
}

func (c *Coupon) ID() uuid.UUID                       { return c.id }
func (c *Coupon) Code() Code                          { return c.code }
func (c *Coupon) Description() string                 { return c.description }
func (c *Coupon) DiscountType() DiscountType          { return c.discountType }
func (c *Coupon) DiscountValue() decimal.Decimal      { return c.discountValue }
func (c *Coupon) MaxDiscountAmount() *decimal.Decimal { return c.maxDiscountAmount }
func (c *Coupon) StartDate() time.Time                { return c.startDate }
func (c *Coupon) EndDate() time.Time                  { return c.endDate }
func (c *Coupon) UsageLimitPerUser() *int             { return c.usageLimitPerUser }
func (c *Coupon) Eligibility() *Eligibility           { return c.eligibility }
