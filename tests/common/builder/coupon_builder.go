//go:build unit || integration

package builder

import (
	"time"

	"coupon-service/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID                uuid.UUID
	Code              string
	Description       string
	DiscountType      string
	DiscountValue     decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	UsageLimitPerUser *int
	Eligibility       *coupon.Eligibility
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SAVE10",
		Description:   "10 percent off",
		DiscountType:  "PERCENT",
		DiscountValue: decimal.NewFromInt(10),
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(
		b.ID,
		b.Code,
		b.Description,
		b.DiscountType,
		b.DiscountValue,
		b.MaxDiscountAmount,
		b.StartDate,
		b.EndDate,
		b.UsageLimitPerUser,
		b.Eligibility,
	)
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithFlat(value int64) *CouponBuilder {
	b.DiscountType = "FLAT"
	b.DiscountValue = decimal.NewFromInt(value)
	return b
}

func (b *CouponBuilder) WithPercent(value int64) *CouponBuilder {
	b.DiscountType = "PERCENT"
	b.DiscountValue = decimal.NewFromInt(value)
	return b
}

func (b *CouponBuilder) WithMaxDiscount(amount int64) *CouponBuilder {
	max := decimal.NewFromInt(amount)
	b.MaxDiscountAmount = &max
	return b
}

func (b *CouponBuilder) WithWindow(start, end time.Time) *CouponBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *CouponBuilder) WithUsageLimit(limit int) *CouponBuilder {
	b.UsageLimitPerUser = &limit
	return b
}

func (b *CouponBuilder) WithEligibility(e *coupon.Eligibility) *CouponBuilder {
	b.Eligibility = e
	return b
}

type UserContextBuilder struct {
	UserID        string
	Tier          *string
	Country       *string
	LifetimeSpend decimal.Decimal
	OrdersPlaced  int
}

func NewUserContextBuilder() *UserContextBuilder {
	tier := "REGULAR"
	country := "IN"
	return &UserContextBuilder{
		UserID:        "user-1",
		Tier:          &tier,
		Country:       &country,
		LifetimeSpend: decimal.NewFromInt(10000),
		OrdersPlaced:  5,
	}
}

func (b *UserContextBuilder) With(mutate func(*UserContextBuilder)) *UserContextBuilder {
	mutate(b)
	return b
}

func (b *UserContextBuilder) WithTier(tier string) *UserContextBuilder {
	b.Tier = &tier
	return b
}

func (b *UserContextBuilder) WithoutTier() *UserContextBuilder {
	b.Tier = nil
	return b
}

func (b *UserContextBuilder) WithCountry(country string) *UserContextBuilder {
	b.Country = &country
	return b
}

func (b *UserContextBuilder) WithLifetimeSpend(amount int64) *UserContextBuilder {
	b.LifetimeSpend = decimal.NewFromInt(amount)
	return b
}

func (b *UserContextBuilder) WithOrdersPlaced(n int) *UserContextBuilder {
	b.OrdersPlaced = n
	return b
}

func (b *UserContextBuilder) Build() coupon.UserContext {
	return coupon.UserContext{
		UserID:        b.UserID,
		Tier:          b.Tier,
		Country:       b.Country,
		LifetimeSpend: b.LifetimeSpend,
		OrdersPlaced:  b.OrdersPlaced,
	}
}

type CartBuilder struct {
	Items []coupon.CartItem
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{}
}

func (b *CartBuilder) WithItem(productID, category string, unitPrice float64, qty int) *CartBuilder {
	b.Items = append(b.Items, coupon.CartItem{
		ProductID: productID,
		Category:  category,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Quantity:  qty,
	})
	return b
}

func (b *CartBuilder) Build() coupon.Cart {
	return coupon.Cart{Items: b.Items}
}
