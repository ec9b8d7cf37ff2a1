package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/queries"
)

var (
	ErrCouponNotFound     = errs.New("coupon not found")
	ErrDuplicateCode      = errs.New("coupon code already exists")
	ErrDomainValidation   = errs.New("coupon validation failed")
	ErrOutsideDateWindow  = errs.New("coupon is outside its validity window")
	ErrUsageLimitReached  = errs.New("coupon usage limit reached")
	ErrNotEligible        = errs.New("user or cart does not meet coupon conditions")
	ErrZeroDiscount       = errs.New("coupon yields no discount for this cart")
)

type CreateCouponParams struct {
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

type RedeemResult struct {
	Code           string
	DiscountAmount decimal.Decimal
}

type CouponCommands interface {
	Create(ctx context.Context, params CreateCouponParams) (*queries.CouponView, error)
	Redeem(ctx context.Context, rawCode string, user coupon.UserContext, cart coupon.Cart) (*RedeemResult, error)
}

type couponCommandsImpl struct {
	repo  CouponRepository
	clock clock.Clock
}

func NewCouponCommands(repo CouponRepository, clk clock.Clock) CouponCommands {
	return &couponCommandsImpl{
		repo:  repo,
		clock: clk,
	}
}

func (c *couponCommandsImpl) Create(ctx context.Context, params CreateCouponParams) (*queries.CouponView, error) {
	cpn, err := coupon.NewCoupon(
		uuid.New(),
		params.Code,
		params.Description,
		params.DiscountType,
		params.DiscountValue,
		params.MaxDiscountAmount,
		params.StartDate,
		params.EndDate,
		params.UsageLimitPerUser,
		params.Eligibility,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.repo.Create(ctx, cpn); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateCode)
		}
		return nil, err
	}

	return queries.NewCouponView(cpn), nil
}

// Redeem applies one coupon to the submitted cart. The gates run in a fixed
// order so a coupon failing several of them always reports the same reason:
// existence, date window, usage limit, eligibility, positive discount. The
// ledger increment is last and nothing is recorded on any failure path.
func (c *couponCommandsImpl) Redeem(ctx context.Context, rawCode string, user coupon.UserContext, cart coupon.Cart) (*RedeemResult, error) {
	code, err := coupon.NewCode(rawCode)
	if err != nil {
		// A code that cannot exist is indistinguishable from an unknown one.
		return nil, errs.Mark(err, ErrCouponNotFound)
	}

	cpn, err := c.repo.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCouponNotFound)
		}
		return nil, err
	}

	if !cpn.WithinDateWindow(c.clock.Now()) {
		return nil, ErrOutsideDateWindow
	}

	used, err := c.repo.UsageCount(ctx, code, user.UserID)
	if err != nil {
		return nil, err
	}
	if !cpn.WithinUsageLimit(used) {
		return nil, ErrUsageLimitReached
	}

	if !cpn.Eligible(user, cart) {
		return nil, ErrNotEligible
	}

	amount := cpn.Discount(cart.Value())
	if !amount.IsPositive() {
		return nil, ErrZeroDiscount
	}

	if err := c.repo.RedeemUsage(ctx, code, user.UserID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, errs.Mark(err, ErrUsageLimitReached)
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, ErrCouponNotFound)
		default:
			return nil, err
		}
	}

	return &RedeemResult{
		Code:           code.String(),
		DiscountAmount: amount.Round(2),
	}, nil
}
