package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
)

type CouponResponse struct {
	ID                uuid.UUID            `json:"id"`
	Code              string               `json:"code"`
	Description       string               `json:"description"`
	DiscountType      string               `json:"discountType"`
	DiscountValue     float64              `json:"discountValue"`
	MaxDiscountAmount *float64             `json:"maxDiscountAmount,omitempty"`
	StartDate         time.Time            `json:"startDate"`
	EndDate           time.Time            `json:"endDate"`
	UsageLimitPerUser *int                 `json:"usageLimitPerUser,omitempty"`
	Eligibility       *EligibilityResponse `json:"eligibility,omitempty"`
}

type EligibilityResponse struct {
	AllowedUserTiers     []string `json:"allowedUserTiers,omitempty"`
	MinLifetimeSpend     *float64 `json:"minLifetimeSpend,omitempty"`
	MinOrdersPlaced      *int     `json:"minOrdersPlaced,omitempty"`
	FirstOrderOnly       *bool    `json:"firstOrderOnly,omitempty"`
	AllowedCountries     []string `json:"allowedCountries,omitempty"`
	MinCartValue         *float64 `json:"minCartValue,omitempty"`
	ApplicableCategories []string `json:"applicableCategories,omitempty"`
	ExcludedCategories   []string `json:"excludedCategories,omitempty"`
	MinItemsCount        *int     `json:"minItemsCount,omitempty"`
}

type BestCouponResponse struct {
	Coupon         *CouponResponse `json:"coupon"`
	DiscountAmount float64         `json:"discountAmount"`
	Reason         string          `json:"reason"`
}

type RedeemResponse struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
}

func FromCouponView(view *queries.CouponView) *CouponResponse {
	if view == nil {
		return nil
	}
	var resp CouponResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromCouponViews(views []*queries.CouponView) []*CouponResponse {
	responses := make([]*CouponResponse, len(views))
	for i, view := range views {
		responses[i] = FromCouponView(view)
	}
	return responses
}

func FromBestCouponResult(result *queries.BestCouponResult) *BestCouponResponse {
	return &BestCouponResponse{
		Coupon:         FromCouponView(result.Coupon),
		DiscountAmount: result.DiscountAmount,
		Reason:         result.Reason,
	}
}

func FromRedeemResult(result *commands.RedeemResult) *RedeemResponse {
	return &RedeemResponse{
		Code:           result.Code,
		DiscountAmount: result.DiscountAmount.InexactFloat64(),
	}
}
