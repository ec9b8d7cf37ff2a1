package request

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/usecase/commands"
)

// UTCTime accepts RFC 3339 timestamps as well as naive ISO timestamps, which
// are taken to already be UTC.
type UTCTime struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *UTCTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	var lastErr error
	for _, layout := range naiveLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

type CreateCouponRequest struct {
	Code              string              `json:"code" binding:"required"`
	Description       string              `json:"description"`
	DiscountType      string              `json:"discountType" binding:"required,oneof=FLAT PERCENT"`
	DiscountValue     float64             `json:"discountValue" binding:"required,gt=0"`
	MaxDiscountAmount *float64            `json:"maxDiscountAmount" binding:"omitempty,gt=0"`
	StartDate         UTCTime             `json:"startDate" binding:"required"`
	EndDate           UTCTime             `json:"endDate" binding:"required"`
	UsageLimitPerUser *int                `json:"usageLimitPerUser" binding:"omitempty,min=1"`
	Eligibility       *EligibilityRequest `json:"eligibility"`
}

// EligibilityRequest distinguishes absent lists (nil, no restriction) from
// present-but-empty ones, so no omitempty-style defaulting happens here.
type EligibilityRequest struct {
	AllowedUserTiers     []string `json:"allowedUserTiers"`
	MinLifetimeSpend     *float64 `json:"minLifetimeSpend" binding:"omitempty,gte=0"`
	MinOrdersPlaced      *int     `json:"minOrdersPlaced" binding:"omitempty,gte=0"`
	FirstOrderOnly       *bool    `json:"firstOrderOnly"`
	AllowedCountries     []string `json:"allowedCountries"`
	MinCartValue         *float64 `json:"minCartValue" binding:"omitempty,gte=0"`
	ApplicableCategories []string `json:"applicableCategories"`
	ExcludedCategories   []string `json:"excludedCategories"`
	MinItemsCount        *int     `json:"minItemsCount" binding:"omitempty,gte=0"`
}

func (r *CreateCouponRequest) ToParams() commands.CreateCouponParams {
	var maxDiscount *decimal.Decimal
	if r.MaxDiscountAmount != nil {
		d := decimal.NewFromFloat(*r.MaxDiscountAmount)
		maxDiscount = &d
	}

	return commands.CreateCouponParams{
		Code:              r.Code,
		Description:       r.Description,
		DiscountType:      r.DiscountType,
		DiscountValue:     decimal.NewFromFloat(r.DiscountValue),
		MaxDiscountAmount: maxDiscount,
		StartDate:         r.StartDate.Time,
		EndDate:           r.EndDate.Time,
		UsageLimitPerUser: r.UsageLimitPerUser,
		Eligibility:       r.Eligibility.ToDomain(),
	}
}

func (r *EligibilityRequest) ToDomain() *coupon.Eligibility {
	if r == nil {
		return nil
	}
	eligibility := &coupon.Eligibility{
		AllowedUserTiers:     r.AllowedUserTiers,
		MinOrdersPlaced:      r.MinOrdersPlaced,
		FirstOrderOnly:       r.FirstOrderOnly,
		AllowedCountries:     r.AllowedCountries,
		ApplicableCategories: r.ApplicableCategories,
		ExcludedCategories:   r.ExcludedCategories,
		MinItemsCount:        r.MinItemsCount,
	}
	if r.MinLifetimeSpend != nil {
		d := decimal.NewFromFloat(*r.MinLifetimeSpend)
		eligibility.MinLifetimeSpend = &d
	}
	if r.MinCartValue != nil {
		d := decimal.NewFromFloat(*r.MinCartValue)
		eligibility.MinCartValue = &d
	}
	return eligibility
}

// EvaluationRequest is the user+cart payload shared by best-coupon selection
// and redemption.
type EvaluationRequest struct {
	User UserContextRequest `json:"user" binding:"required"`
	Cart CartRequest        `json:"cart" binding:"required"`
}

type UserContextRequest struct {
	UserID        string  `json:"userId" binding:"required"`
	Tier          *string `json:"tier"`
	Country       *string `json:"country"`
	LifetimeSpend float64 `json:"lifetimeSpend" binding:"gte=0"`
	OrdersPlaced  int     `json:"ordersPlaced" binding:"gte=0"`
}

type CartRequest struct {
	Items []CartItemRequest `json:"items" binding:"dive"`
}

type CartItemRequest struct {
	ProductID string  `json:"productId"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

func (r *EvaluationRequest) ToDomain() (coupon.UserContext, coupon.Cart) {
	user := coupon.UserContext{
		UserID:        r.User.UserID,
		Tier:          r.User.Tier,
		Country:       r.User.Country,
		LifetimeSpend: decimal.NewFromFloat(r.User.LifetimeSpend),
		OrdersPlaced:  r.User.OrdersPlaced,
	}

	items := make([]coupon.CartItem, len(r.Cart.Items))
	for i, item := range r.Cart.Items {
		items[i] = coupon.CartItem{
			ProductID: item.ProductID,
			Category:  item.Category,
			UnitPrice: decimal.NewFromFloat(item.UnitPrice),
			Quantity:  item.Quantity,
		}
	}

	return user, coupon.Cart{Items: items}
}
