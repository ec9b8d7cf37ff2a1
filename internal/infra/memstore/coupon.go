// Package memstore is the default coupon store: process-local, guarded by a
// single RWMutex. Redemption's cap check and increment happen inside one
// critical section, so the per-user count can never pass the limit even under
// concurrent redeems.
package memstore

import (
	"context"
	"sync"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
)

type entry struct {
	coupon *coupon.Coupon
	usage  map[string]int // userID -> successful redemption count
}

type CouponStore struct {
	mu      sync.RWMutex
	entries map[coupon.Code]*entry
	order   []coupon.Code // insertion order for stable listing
}

func NewCouponStore() *CouponStore {
	return &CouponStore{
		entries: make(map[coupon.Code]*entry),
	}
}

func (s *CouponStore) Create(_ context.Context, cpn *coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[cpn.Code()]; exists {
		return infra.WrapRepoErr("coupon code already exists", nil, infra.KindDuplicateKey)
	}
	s.entries[cpn.Code()] = &entry{
		coupon: cpn,
		usage:  make(map[string]int),
	}
	s.order = append(s.order, cpn.Code())
	return nil
}

func (s *CouponStore) FindByCode(_ context.Context, code coupon.Code) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[code]
	if !ok {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return e.coupon, nil
}

func (s *CouponStore) List(_ context.Context) ([]*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coupons := make([]*coupon.Coupon, 0, len(s.order))
	for _, code := range s.order {
		coupons = append(coupons, s.entries[code].coupon)
	}
	return coupons, nil
}

func (s *CouponStore) UsageCount(_ context.Context, code coupon.Code, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[code]
	if !ok {
		return 0, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return e.usage[userID], nil
}

func (s *CouponStore) UsageCounts(_ context.Context, userID string) (map[coupon.Code]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[coupon.Code]int, len(s.entries))
	for code, e := range s.entries {
		if used := e.usage[userID]; used > 0 {
			counts[code] = used
		}
	}
	return counts, nil
}

// RedeemUsage increments the user's redemption count for the coupon, failing
// with CONFLICT when the increment would pass the coupon's per-user limit.
// Check and increment share one critical section.
func (s *CouponStore) RedeemUsage(_ context.Context, code coupon.Code, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[code]
	if !ok {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	if !e.coupon.WithinUsageLimit(e.usage[userID]) {
		return infra.WrapRepoErr("usage limit reached", nil, infra.KindConflict)
	}
	e.usage[userID]++
	return nil
}
