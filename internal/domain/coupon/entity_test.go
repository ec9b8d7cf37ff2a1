//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"coupon-service/internal/domain/coupon"
	"coupon-service/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CouponBuilder)
	errIs  error
}

func TestNewCoupon(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, coupon.Code("SAVE10"), actual.Code())
		assert.Equal(t, coupon.DiscountPercent, actual.DiscountType())
		assert.True(t, actual.DiscountValue().Equal(decimal.NewFromInt(10)))
		assert.Nil(t, actual.UsageLimitPerUser())
		assert.Nil(t, actual.Eligibility())
	})

	t.Run("コード検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "小文字と空白は正規化される",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("  save10 ") },
			},
			{
				name:   "空コードNG",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("") },
				errIs:  coupon.ErrInvalidCouponCode,
			},
			{
				name:   "短すぎるコードNG",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("AB") },
				errIs:  coupon.ErrInvalidCouponCode,
			},
			{
				name:   "記号混じりNG",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("SAVE 10%") },
				errIs:  coupon.ErrInvalidCouponCode,
			},
		})
	})

	t.Run("割引検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "FLAT割引OK",
				mutate: func(b *builder.CouponBuilder) { b.WithFlat(100) },
			},
			{
				name:   "不明な割引種別NG",
				mutate: func(b *builder.CouponBuilder) { b.DiscountType = "BOGO" },
				errIs:  coupon.ErrInvalidDiscountType,
			},
			{
				name:   "割引値ゼロNG",
				mutate: func(b *builder.CouponBuilder) { b.DiscountValue = decimal.Zero },
				errIs:  coupon.ErrInvalidDiscountValue,
			},
			{
				name:   "負の割引値NG",
				mutate: func(b *builder.CouponBuilder) { b.DiscountValue = decimal.NewFromInt(-5) },
				errIs:  coupon.ErrInvalidDiscountValue,
			},
			{
				name: "負の上限額NG",
				mutate: func(b *builder.CouponBuilder) {
					max := decimal.NewFromInt(-1)
					b.MaxDiscountAmount = &max
				},
				errIs: coupon.ErrInvalidMaxDiscount,
			},
		})
	})

	t.Run("期間検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "開始と終了が同時刻OK",
				mutate: func(b *builder.CouponBuilder) {
					at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
					b.WithWindow(at, at)
				},
			},
			{
				name: "終了が開始より前NG",
				mutate: func(b *builder.CouponBuilder) {
					b.WithWindow(
						time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
						time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					)
				},
				errIs: coupon.ErrInvalidDateRange,
			},
		})
	})

	t.Run("利用上限検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "上限1OK",
				mutate: func(b *builder.CouponBuilder) { b.WithUsageLimit(1) },
			},
			{
				name:   "上限ゼロNG",
				mutate: func(b *builder.CouponBuilder) { b.WithUsageLimit(0) },
				errIs:  coupon.ErrInvalidUsageLimit,
			},
		})
	})
}

func TestCouponWithinDateWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	cpn, err := builder.NewCouponBuilder().WithWindow(start, end).BuildDomain()
	require.NoError(t, err)

	assert.True(t, cpn.WithinDateWindow(start), "開始時刻ちょうどは有効")
	assert.True(t, cpn.WithinDateWindow(end), "終了時刻ちょうどは有効")
	assert.True(t, cpn.WithinDateWindow(start.AddDate(0, 0, 10)))
	assert.False(t, cpn.WithinDateWindow(start.Add(-time.Second)))
	assert.False(t, cpn.WithinDateWindow(end.Add(time.Second)))
}

func TestCouponWithinUsageLimit(t *testing.T) {
	t.Run("上限なしは常に許可", func(t *testing.T) {
		cpn, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, cpn.WithinUsageLimit(0))
		assert.True(t, cpn.WithinUsageLimit(1000000))
	})

	t.Run("上限未満のみ許可", func(t *testing.T) {
		cpn, err := builder.NewCouponBuilder().WithUsageLimit(3).BuildDomain()
		require.NoError(t, err)
		assert.True(t, cpn.WithinUsageLimit(2))
		assert.False(t, cpn.WithinUsageLimit(3))
		assert.False(t, cpn.WithinUsageLimit(4))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCouponBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
