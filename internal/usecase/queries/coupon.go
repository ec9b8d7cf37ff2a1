package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/pkg/clock"
)

// BestCouponReason values returned alongside a selection result.
const (
	ReasonOK                = "OK"
	ReasonNoEligibleCoupons = "no eligible coupons"
)

// CouponReadStore is the read-side store port.
type CouponReadStore interface {
	List(ctx context.Context) ([]*coupon.Coupon, error)
	UsageCounts(ctx context.Context, userID string) (map[coupon.Code]int, error)
}

// CouponView is the API shape of a coupon. The redemption ledger is
// deliberately absent.
type CouponView struct {
	ID                uuid.UUID        `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	DiscountType      string           `json:"discountType"`
	DiscountValue     float64          `json:"discountValue"`
	MaxDiscountAmount *float64         `json:"maxDiscountAmount,omitempty"`
	StartDate         time.Time        `json:"startDate"`
	EndDate           time.Time        `json:"endDate"`
	UsageLimitPerUser *int             `json:"usageLimitPerUser,omitempty"`
	Eligibility       *EligibilityView `json:"eligibility,omitempty"`
}

type EligibilityView struct {
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

type BestCouponResult struct {
	Coupon         *CouponView
	DiscountAmount float64
	Reason         string
}

type CouponQueries interface {
	List(ctx context.Context) ([]*CouponView, error)
	BestCoupon(ctx context.Context, user coupon.UserContext, cart coupon.Cart) (*BestCouponResult, error)
}

type couponQueriesImpl struct {
	readStore CouponReadStore
	clock     clock.Clock
}

func NewCouponQueries(readStore CouponReadStore, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{
		readStore: readStore,
		clock:     clk,
	}
}

func (q *couponQueriesImpl) List(ctx context.Context) ([]*CouponView, error) {
	coupons, err := q.readStore.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*CouponView, len(coupons))
	for i, cpn := range coupons {
		views[i] = NewCouponView(cpn)
	}
	return views, nil
}

func (q *couponQueriesImpl) BestCoupon(ctx context.Context, user coupon.UserContext, cart coupon.Cart) (*BestCouponResult, error) {
	coupons, err := q.readStore.List(ctx)
	if err != nil {
		return nil, err
	}
	usages, err := q.readStore.UsageCounts(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	candidates := make([]coupon.Candidate, len(coupons))
	for i, cpn := range coupons {
		candidates[i] = coupon.Candidate{
			Coupon: cpn,
			Used:   usages[cpn.Code()],
		}
	}

	selection := coupon.SelectBest(candidates, user, cart, q.clock.Now())
	if selection == nil {
		return &BestCouponResult{Reason: ReasonNoEligibleCoupons}, nil
	}

	return &BestCouponResult{
		Coupon:         NewCouponView(selection.Coupon),
		DiscountAmount: selection.Amount.InexactFloat64(),
		Reason:         ReasonOK,
	}, nil
}

func NewCouponView(cpn *coupon.Coupon) *CouponView {
	view := &CouponView{
		ID:                cpn.ID(),
		Code:              cpn.Code().String(),
		Description:       cpn.Description(),
		DiscountType:      cpn.DiscountType().String(),
		DiscountValue:     cpn.DiscountValue().InexactFloat64(),
		StartDate:         cpn.StartDate(),
		EndDate:           cpn.EndDate(),
		UsageLimitPerUser: cpn.UsageLimitPerUser(),
	}
	if max := cpn.MaxDiscountAmount(); max != nil {
		f := max.InexactFloat64()
		view.MaxDiscountAmount = &f
	}
	if e := cpn.Eligibility(); e != nil {
		view.Eligibility = newEligibilityView(e)
	}
	return view
}

func newEligibilityView(e *coupon.Eligibility) *EligibilityView {
	view := &EligibilityView{
		AllowedUserTiers:     e.AllowedUserTiers,
		MinOrdersPlaced:      e.MinOrdersPlaced,
		FirstOrderOnly:       e.FirstOrderOnly,
		AllowedCountries:     e.AllowedCountries,
		ApplicableCategories: e.ApplicableCategories,
		ExcludedCategories:   e.ExcludedCategories,
		MinItemsCount:        e.MinItemsCount,
	}
	if e.MinLifetimeSpend != nil {
		f := e.MinLifetimeSpend.InexactFloat64()
		view.MinLifetimeSpend = &f
	}
	if e.MinCartValue != nil {
		f := e.MinCartValue.InexactFloat64()
		view.MinCartValue = &f
	}
	return view
}
