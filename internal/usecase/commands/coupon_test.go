//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra/memstore"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/usecase/commands"
	"coupon-service/tests/common/builder"
)

var evalAt = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newCommands(t *testing.T) (commands.CouponCommands, *memstore.CouponStore, *clock.MockClock) {
	t.Helper()
	store := memstore.NewCouponStore()
	clk := clock.NewMockClock(evalAt)
	return commands.NewCouponCommands(store, clk), store, clk
}

func seedCoupon(t *testing.T, store *memstore.CouponStore, b *builder.CouponBuilder) *coupon.Coupon {
	t.Helper()
	cpn, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), cpn))
	return cpn
}

func defaultParams() commands.CreateCouponParams {
	return commands.CreateCouponParams{
		Code:          "SAVE10",
		Description:   "10 percent off",
		DiscountType:  "PERCENT",
		DiscountValue: decimal.NewFromInt(10),
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestCouponCommandsCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		uc, _, _ := newCommands(t)

		view, err := uc.Create(ctx, defaultParams())
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", view.Code)
		assert.Equal(t, "PERCENT", view.DiscountType)
	})

	t.Run("コードは正規化して保存される", func(t *testing.T) {
		uc, store, _ := newCommands(t)

		params := defaultParams()
		params.Code = "  save10 "
		view, err := uc.Create(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", view.Code)

		code, err := coupon.NewCode("SAVE10")
		require.NoError(t, err)
		_, err = store.FindByCode(ctx, code)
		assert.NoError(t, err)
	})

	t.Run("重複コードはErrDuplicateCode", func(t *testing.T) {
		uc, _, _ := newCommands(t)

		_, err := uc.Create(ctx, defaultParams())
		require.NoError(t, err)

		_, err = uc.Create(ctx, defaultParams())
		assert.ErrorIs(t, err, commands.ErrDuplicateCode)
	})

	t.Run("ドメイン検証エラーはErrDomainValidation", func(t *testing.T) {
		uc, _, _ := newCommands(t)

		params := defaultParams()
		params.DiscountValue = decimal.NewFromInt(-5)
		_, err := uc.Create(ctx, params)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestCouponCommandsRedeem(t *testing.T) {
	ctx := context.Background()
	user := builder.NewUserContextBuilder().Build()
	cart := builder.NewCartBuilder().WithItem("p1", "electronics", 1000, 1).Build()

	t.Run("基本成功ケース", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder())

		result, err := uc.Redeem(ctx, "SAVE10", user, cart)
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", result.Code)
		assert.True(t, decimal.RequireFromString("100.00").Equal(result.DiscountAmount))
	})

	t.Run("成功すると台帳に記録される", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		cpn := seedCoupon(t, store, builder.NewCouponBuilder())

		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		require.NoError(t, err)

		used, err := store.UsageCount(ctx, cpn.Code(), user.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, used)
	})

	t.Run("未登録コードはErrCouponNotFound", func(t *testing.T) {
		uc, _, _ := newCommands(t)

		_, err := uc.Redeem(ctx, "UNKNOWN", user, cart)
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})

	t.Run("不正形式のコードもErrCouponNotFound", func(t *testing.T) {
		uc, _, _ := newCommands(t)

		_, err := uc.Redeem(ctx, "no such code!", user, cart)
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})

	t.Run("期間外はErrOutsideDateWindow", func(t *testing.T) {
		uc, store, clk := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder())

		clk.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		assert.ErrorIs(t, err, commands.ErrOutsideDateWindow)
	})

	t.Run("上限到達はErrUsageLimitReached", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithUsageLimit(1))

		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		require.NoError(t, err)

		_, err = uc.Redeem(ctx, "SAVE10", user, cart)
		assert.ErrorIs(t, err, commands.ErrUsageLimitReached)
	})

	t.Run("条件不一致はErrNotEligible", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithEligibility(&coupon.Eligibility{
			AllowedUserTiers: []string{"PLATINUM"},
		}))

		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		assert.ErrorIs(t, err, commands.ErrNotEligible)
	})

	t.Run("割引ゼロはErrZeroDiscount", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder())

		_, err := uc.Redeem(ctx, "SAVE10", user, builder.NewCartBuilder().Build())
		assert.ErrorIs(t, err, commands.ErrZeroDiscount)
	})

	t.Run("ゲートは期間→上限→条件の順で判定される", func(t *testing.T) {
		uc, store, clk := newCommands(t)
		// Expired, capped, and ineligible all at once.
		seedCoupon(t, store, builder.NewCouponBuilder().
			WithUsageLimit(1).
			WithEligibility(&coupon.Eligibility{AllowedUserTiers: []string{"PLATINUM"}}))

		clk.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		assert.ErrorIs(t, err, commands.ErrOutsideDateWindow)

		clk.Set(evalAt)
		_, err = uc.Redeem(ctx, "SAVE10", user, cart)
		assert.ErrorIs(t, err, commands.ErrNotEligible)
	})

	t.Run("失敗時は台帳に記録されない", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		cpn := seedCoupon(t, store, builder.NewCouponBuilder().WithEligibility(&coupon.Eligibility{
			AllowedUserTiers: []string{"PLATINUM"},
		}))

		_, err := uc.Redeem(ctx, "SAVE10", user, cart)
		require.Error(t, err)

		used, err := store.UsageCount(ctx, cpn.Code(), user.UserID)
		require.NoError(t, err)
		assert.Equal(t, 0, used)
	})

	t.Run("割引額は2桁に丸めて返す", func(t *testing.T) {
		uc, store, _ := newCommands(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithPercent(5))

		oddCart := builder.NewCartBuilder().WithItem("p1", "books", 199.99, 1).Build()
		result, err := uc.Redeem(ctx, "SAVE10", user, oddCart)
		require.NoError(t, err)
		// 5% of 199.99 is 9.9995
		assert.Equal(t, "10.00", result.DiscountAmount.StringFixed(2))
	})
}
