//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/memstore"
	"coupon-service/tests/common/builder"
)

func mustBuild(t *testing.T, b *builder.CouponBuilder) *coupon.Coupon {
	t.Helper()
	cpn, err := b.BuildDomain()
	require.NoError(t, err)
	return cpn
}

func TestCouponStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("登録と取得が往復する", func(t *testing.T) {
		store := memstore.NewCouponStore()
		cpn := mustBuild(t, builder.NewCouponBuilder())
		require.NoError(t, store.Create(ctx, cpn))

		found, err := store.FindByCode(ctx, cpn.Code())
		require.NoError(t, err)
		assert.Equal(t, cpn.Code(), found.Code())
	})

	t.Run("重複コードはDUPLICATE_KEY", func(t *testing.T) {
		store := memstore.NewCouponStore()
		require.NoError(t, store.Create(ctx, mustBuild(t, builder.NewCouponBuilder())))

		err := store.Create(ctx, mustBuild(t, builder.NewCouponBuilder()))
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("未登録コードはNOT_FOUND", func(t *testing.T) {
		store := memstore.NewCouponStore()
		code, err := coupon.NewCode("NOPE")
		require.NoError(t, err)

		_, err = store.FindByCode(ctx, code)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestCouponStoreList(t *testing.T) {
	ctx := context.Background()

	t.Run("挿入順で返す", func(t *testing.T) {
		store := memstore.NewCouponStore()
		codes := []string{"ZULU", "ALPHA", "MIKE"}
		for _, c := range codes {
			require.NoError(t, store.Create(ctx, mustBuild(t, builder.NewCouponBuilder().WithCode(c))))
		}

		coupons, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, coupons, len(codes))
		for i, c := range codes {
			assert.Equal(t, c, coupons[i].Code().String())
		}
	})

	t.Run("空ストアは空スライス", func(t *testing.T) {
		store := memstore.NewCouponStore()
		coupons, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, coupons)
	})
}

func TestCouponStoreRedeemUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("上限まで加算し超過はCONFLICT", func(t *testing.T) {
		store := memstore.NewCouponStore()
		cpn := mustBuild(t, builder.NewCouponBuilder().WithUsageLimit(2))
		require.NoError(t, store.Create(ctx, cpn))

		require.NoError(t, store.RedeemUsage(ctx, cpn.Code(), "user-1"))
		require.NoError(t, store.RedeemUsage(ctx, cpn.Code(), "user-1"))

		err := store.RedeemUsage(ctx, cpn.Code(), "user-1")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))

		used, err := store.UsageCount(ctx, cpn.Code(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, used)
	})

	t.Run("利用回数はユーザ毎に独立", func(t *testing.T) {
		store := memstore.NewCouponStore()
		cpn := mustBuild(t, builder.NewCouponBuilder().WithUsageLimit(1))
		require.NoError(t, store.Create(ctx, cpn))

		require.NoError(t, store.RedeemUsage(ctx, cpn.Code(), "user-1"))
		require.NoError(t, store.RedeemUsage(ctx, cpn.Code(), "user-2"))

		used, err := store.UsageCount(ctx, cpn.Code(), "user-2")
		require.NoError(t, err)
		assert.Equal(t, 1, used)
	})

	t.Run("上限なしは無制限に加算できる", func(t *testing.T) {
		store := memstore.NewCouponStore()
		cpn := mustBuild(t, builder.NewCouponBuilder())
		require.NoError(t, store.Create(ctx, cpn))

		for i := 0; i < 10; i++ {
			require.NoError(t, store.RedeemUsage(ctx, cpn.Code(), "user-1"))
		}
		used, err := store.UsageCount(ctx, cpn.Code(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 10, used)
	})

	t.Run("未登録コードはNOT_FOUND", func(t *testing.T) {
		store := memstore.NewCouponStore()
		code, err := coupon.NewCode("NOPE")
		require.NoError(t, err)

		err = store.RedeemUsage(ctx, code, "user-1")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestCouponStoreRedeemUsageConcurrent(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewCouponStore()
	cpn := mustBuild(t, builder.NewCouponBuilder().WithUsageLimit(1))
	require.NoError(t, store.Create(ctx, cpn))

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.RedeemUsage(ctx, cpn.Code(), "user-1")
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	}
	assert.Equal(t, 1, succeeded)

	used, err := store.UsageCount(ctx, cpn.Code(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestCouponStoreUsageCounts(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewCouponStore()

	first := mustBuild(t, builder.NewCouponBuilder().WithCode("FIRST"))
	second := mustBuild(t, builder.NewCouponBuilder().WithCode("SECOND"))
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	require.NoError(t, store.RedeemUsage(ctx, first.Code(), "user-1"))
	require.NoError(t, store.RedeemUsage(ctx, first.Code(), "user-1"))

	counts, err := store.UsageCounts(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[coupon.Code]int{first.Code(): 2}, counts)

	counts, err = store.UsageCounts(ctx, "user-9")
	require.NoError(t, err)
	assert.Empty(t, counts)
}
