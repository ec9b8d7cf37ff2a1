package bootstrap

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
)

var SeedModule = fx.Module("seed",
	fx.Invoke(SeedCoupons),
)

// SeedCoupons inserts three illustrative coupons when the store is empty.
// Seeding goes through the normal creation path and failures are logged and
// swallowed so a bad seed never prevents startup.
func SeedCoupons(
	couponCommands commands.CouponCommands,
	couponQueries queries.CouponQueries,
	clk clock.Clock,
	logger *slog.Logger,
) {
	ctx := context.Background()

	existing, err := couponQueries.List(ctx)
	if err != nil {
		logger.Warn("seed: listing coupons failed", "error", err.Error())
		return
	}
	if len(existing) > 0 {
		return
	}

	now := clk.Now().UTC()
	one := 1
	cap500 := decimal.NewFromInt(500)
	minCart500 := decimal.NewFromInt(500)
	minCart1000 := decimal.NewFromInt(1000)
	firstOrder := true

	seeds := []commands.CreateCouponParams{
		{
			Code:              "WELCOME100",
			Description:       "Flat 100 off the first order",
			DiscountType:      "FLAT",
			DiscountValue:     decimal.NewFromInt(100),
			StartDate:         now,
			EndDate:           now.AddDate(0, 0, 30),
			UsageLimitPerUser: &one,
			Eligibility: &coupon.Eligibility{
				FirstOrderOnly: &firstOrder,
				MinCartValue:   &minCart500,
			},
		},
		{
			Code:              "GOLD10",
			Description:       "10% off for gold members, capped at 500",
			DiscountType:      "PERCENT",
			DiscountValue:     decimal.NewFromInt(10),
			MaxDiscountAmount: &cap500,
			StartDate:         now,
			EndDate:           now.AddDate(0, 0, 60),
			Eligibility: &coupon.Eligibility{
				AllowedUserTiers: []string{"GOLD"},
				MinCartValue:     &minCart1000,
			},
		},
		{
			Code:          "FASHION5",
			Description:   "5% off fashion carts",
			DiscountType:  "PERCENT",
			DiscountValue: decimal.NewFromInt(5),
			StartDate:     now,
			EndDate:       now.AddDate(0, 0, 10),
			Eligibility: &coupon.Eligibility{
				ApplicableCategories: []string{"fashion"},
				MinItemsCount:        &one,
			},
		},
	}

	for _, params := range seeds {
		if _, err := couponCommands.Create(ctx, params); err != nil {
			logger.Warn("seed: creating coupon failed", "code", params.Code, "error", err.Error())
			continue
		}
		logger.Info("seed: coupon created", "code", params.Code)
	}
}
