//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra/memstore"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/usecase/queries"
	"coupon-service/tests/common/builder"
)

var evalAt = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newQueries(t *testing.T) (queries.CouponQueries, *memstore.CouponStore) {
	t.Helper()
	store := memstore.NewCouponStore()
	return queries.NewCouponQueries(store, clock.NewMockClock(evalAt)), store
}

func seedCoupon(t *testing.T, store *memstore.CouponStore, b *builder.CouponBuilder) *coupon.Coupon {
	t.Helper()
	cpn, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), cpn))
	return cpn
}

func TestCouponQueriesList(t *testing.T) {
	ctx := context.Background()

	t.Run("登録順で全件返す", func(t *testing.T) {
		q, store := newQueries(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithCode("FIRST"))
		seedCoupon(t, store, builder.NewCouponBuilder().WithCode("SECOND"))

		views, err := q.List(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "FIRST", views[0].Code)
		assert.Equal(t, "SECOND", views[1].Code)
	})

	t.Run("空ストアは空スライス", func(t *testing.T) {
		q, _ := newQueries(t)

		views, err := q.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("条件がビューに漏れなく写る", func(t *testing.T) {
		q, store := newQueries(t)
		minCart := decimal.NewFromInt(500)
		items := 2
		seedCoupon(t, store, builder.NewCouponBuilder().WithEligibility(&coupon.Eligibility{
			AllowedUserTiers:     []string{"GOLD", "PLATINUM"},
			MinCartValue:         &minCart,
			ApplicableCategories: []string{},
			MinItemsCount:        &items,
		}))

		views, err := q.List(ctx)
		require.NoError(t, err)
		require.Len(t, views, 1)

		minCartF := 500.0
		want := &queries.EligibilityView{
			AllowedUserTiers:     []string{"GOLD", "PLATINUM"},
			MinCartValue:         &minCartF,
			ApplicableCategories: []string{},
			MinItemsCount:        &items,
		}
		if diff := cmp.Diff(want, views[0].Eligibility); diff != "" {
			t.Errorf("eligibility view mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCouponQueriesBestCoupon(t *testing.T) {
	ctx := context.Background()
	user := builder.NewUserContextBuilder().Build()
	cart := builder.NewCartBuilder().WithItem("p1", "electronics", 1000, 1).Build()

	t.Run("最大割引のクーポンを選ぶ", func(t *testing.T) {
		q, store := newQueries(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithCode("PCT10").WithPercent(10))
		seedCoupon(t, store, builder.NewCouponBuilder().WithCode("PCT20").WithPercent(20))

		result, err := q.BestCoupon(ctx, user, cart)
		require.NoError(t, err)
		require.NotNil(t, result.Coupon)
		assert.Equal(t, "PCT20", result.Coupon.Code)
		assert.Equal(t, float64(200), result.DiscountAmount)
		assert.Equal(t, queries.ReasonOK, result.Reason)
	})

	t.Run("候補なしはクーポンnilと理由を返す", func(t *testing.T) {
		q, _ := newQueries(t)

		result, err := q.BestCoupon(ctx, user, cart)
		require.NoError(t, err)
		assert.Nil(t, result.Coupon)
		assert.Equal(t, float64(0), result.DiscountAmount)
		assert.Equal(t, queries.ReasonNoEligibleCoupons, result.Reason)
	})

	t.Run("利用済み上限のクーポンは候補から外れる", func(t *testing.T) {
		q, store := newQueries(t)
		big := seedCoupon(t, store, builder.NewCouponBuilder().WithCode("PCT20").WithPercent(20).WithUsageLimit(1))
		seedCoupon(t, store, builder.NewCouponBuilder().WithCode("PCT10").WithPercent(10))

		require.NoError(t, store.RedeemUsage(ctx, big.Code(), user.UserID))

		result, err := q.BestCoupon(ctx, user, cart)
		require.NoError(t, err)
		require.NotNil(t, result.Coupon)
		assert.Equal(t, "PCT10", result.Coupon.Code)
	})

	t.Run("他ユーザの利用履歴は影響しない", func(t *testing.T) {
		q, store := newQueries(t)
		capped := seedCoupon(t, store, builder.NewCouponBuilder().WithCode("PCT20").WithPercent(20).WithUsageLimit(1))

		require.NoError(t, store.RedeemUsage(ctx, capped.Code(), "someone-else"))

		result, err := q.BestCoupon(ctx, user, cart)
		require.NoError(t, err)
		require.NotNil(t, result.Coupon)
		assert.Equal(t, "PCT20", result.Coupon.Code)
	})

	t.Run("条件を満たさないクーポンだけなら候補なし", func(t *testing.T) {
		q, store := newQueries(t)
		seedCoupon(t, store, builder.NewCouponBuilder().WithEligibility(&coupon.Eligibility{
			AllowedUserTiers: []string{"PLATINUM"},
		}))

		result, err := q.BestCoupon(ctx, user, cart)
		require.NoError(t, err)
		assert.Nil(t, result.Coupon)
		assert.Equal(t, queries.ReasonNoEligibleCoupons, result.Reason)
	})
}
