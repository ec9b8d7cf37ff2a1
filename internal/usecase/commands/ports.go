package commands

import (
	"context"

	"coupon-service/internal/domain/coupon"
)

// CouponRepository is the write-side store port. RedeemUsage must perform the
// limit check and the increment atomically; it fails with a CONFLICT-kind
// repository error when the increment would pass the per-user cap.
type CouponRepository interface {
	Create(ctx context.Context, cpn *coupon.Coupon) error
	FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	UsageCount(ctx context.Context, code coupon.Code, userID string) (int, error)
	RedeemUsage(ctx context.Context, code coupon.Code, userID string) error
}
