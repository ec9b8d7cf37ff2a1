package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"coupon-service/internal/domain/coupon"
	"coupon-service/internal/infra"
)

const (
	insertCouponSQL = `INSERT INTO coupons
		(id, code, description, discount_type, discount_value, max_discount_amount,
		 start_date, end_date, usage_limit_per_user, eligibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectCouponSQL = `SELECT id, code, description, discount_type, discount_value,
		max_discount_amount, start_date, end_date, usage_limit_per_user, eligibility
		FROM coupons WHERE code = $1`

	listCouponsSQL = `SELECT id, code, description, discount_type, discount_value,
		max_discount_amount, start_date, end_date, usage_limit_per_user, eligibility
		FROM coupons ORDER BY created_at, code`

	selectUsageSQL = `SELECT used_count FROM coupon_usages
		WHERE coupon_code = $1 AND user_id = $2`

	selectUserUsagesSQL = `SELECT coupon_code, used_count FROM coupon_usages
		WHERE user_id = $1 AND used_count > 0`

	selectLimitSQL = `SELECT usage_limit_per_user FROM coupons WHERE code = $1`

	upsertUsageRowSQL = `INSERT INTO coupon_usages (coupon_code, user_id, used_count)
		VALUES ($1, $2, 0) ON CONFLICT (coupon_code, user_id) DO NOTHING`

	lockUsageSQL = `SELECT used_count FROM coupon_usages
		WHERE coupon_code = $1 AND user_id = $2 FOR UPDATE`

	incrementUsageSQL = `UPDATE coupon_usages SET used_count = used_count + 1
		WHERE coupon_code = $1 AND user_id = $2`
)

const uniqueViolationCode = "23505"

type CouponStore struct {
	pool *pgxpool.Pool
}

func NewCouponStore(pool *pgxpool.Pool) *CouponStore {
	return &CouponStore{pool: pool}
}

// eligibilityRecord is the JSONB shape of an eligibility rule set. Slice
// fields must not use omitempty: a present-but-empty list is distinct from an
// absent one and has to survive the round trip.
type eligibilityRecord struct {
	AllowedUserTiers     []string         `json:"allowedUserTiers"`
	MinLifetimeSpend     *decimal.Decimal `json:"minLifetimeSpend,omitempty"`
	MinOrdersPlaced      *int             `json:"minOrdersPlaced,omitempty"`
	FirstOrderOnly       *bool            `json:"firstOrderOnly,omitempty"`
	AllowedCountries     []string         `json:"allowedCountries"`
	MinCartValue         *decimal.Decimal `json:"minCartValue,omitempty"`
	ApplicableCategories []string         `json:"applicableCategories"`
	ExcludedCategories   []string         `json:"excludedCategories"`
	MinItemsCount        *int             `json:"minItemsCount,omitempty"`
}

func (s *CouponStore) Create(ctx context.Context, cpn *coupon.Coupon) error {
	eligibilityJSON, err := marshalEligibility(cpn.Eligibility())
	if err != nil {
		return infra.WrapRepoErr("encoding eligibility", err)
	}

	_, err = s.pool.Exec(ctx, insertCouponSQL,
		cpn.ID(),
		cpn.Code().String(),
		cpn.Description(),
		cpn.DiscountType().String(),
		cpn.DiscountValue(),
		cpn.MaxDiscountAmount(),
		cpn.StartDate(),
		cpn.EndDate(),
		cpn.UsageLimitPerUser(),
		eligibilityJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("inserting coupon", err)
	}
	return nil
}

func (s *CouponStore) FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	rows, err := s.pool.Query(ctx, selectCouponSQL, code.String())
	if err != nil {
		return nil, infra.WrapRepoErr("finding coupon", err)
	}

	cpn, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("finding coupon", err)
	}
	return cpn, nil
}

func (s *CouponStore) List(ctx context.Context) ([]*coupon.Coupon, error) {
	rows, err := s.pool.Query(ctx, listCouponsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("listing coupons", err)
	}

	coupons, err := pgx.CollectRows(rows, scanCoupon)
	if err != nil {
		return nil, infra.WrapRepoErr("listing coupons", err)
	}
	return coupons, nil
}

func (s *CouponStore) UsageCount(ctx context.Context, code coupon.Code, userID string) (int, error) {
	var used int
	err := s.pool.QueryRow(ctx, selectUsageSQL, code.String(), userID).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, infra.WrapRepoErr("reading usage count", err)
	}
	return used, nil
}

func (s *CouponStore) UsageCounts(ctx context.Context, userID string) (map[coupon.Code]int, error) {
	rows, err := s.pool.Query(ctx, selectUserUsagesSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("reading usage counts", err)
	}
	defer rows.Close()

	counts := make(map[coupon.Code]int)
	for rows.Next() {
		var (
			code string
			used int
		)
		if err := rows.Scan(&code, &used); err != nil {
			return nil, infra.WrapRepoErr("reading usage counts", err)
		}
		counts[coupon.Code(code)] = used
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("reading usage counts", err)
	}
	return counts, nil
}

// RedeemUsage increments the user's redemption count inside a transaction,
// locking the usage row so concurrent redeems cannot pass the per-user limit.
func (s *CouponStore) RedeemUsage(ctx context.Context, code coupon.Code, userID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("beginning redeem transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var limit *int
	err = tx.QueryRow(ctx, selectLimitSQL, code.String()).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("reading usage limit", err)
	}

	if _, err := tx.Exec(ctx, upsertUsageRowSQL, code.String(), userID); err != nil {
		return infra.WrapRepoErr("creating usage row", err)
	}

	var used int
	if err := tx.QueryRow(ctx, lockUsageSQL, code.String(), userID).Scan(&used); err != nil {
		return infra.WrapRepoErr("locking usage row", err)
	}
	if limit != nil && used >= *limit {
		return infra.WrapRepoErr("usage limit reached", nil, infra.KindConflict)
	}

	if _, err := tx.Exec(ctx, incrementUsageSQL, code.String(), userID); err != nil {
		return infra.WrapRepoErr("incrementing usage", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("committing redeem transaction", err)
	}
	return nil
}

func scanCoupon(row pgx.CollectableRow) (*coupon.Coupon, error) {
	var (
		id                uuid.UUID
		code              string
		description       string
		discountType      string
		discountValue     decimal.Decimal
		maxDiscount       *decimal.Decimal
		startDate         time.Time
		endDate           time.Time
		usageLimitPerUser *int
		eligibilityJSON   []byte
	)
	err := row.Scan(
		&id, &code, &description, &discountType, &discountValue,
		&maxDiscount, &startDate, &endDate, &usageLimitPerUser, &eligibilityJSON,
	)
	if err != nil {
		return nil, err
	}

	eligibility, err := unmarshalEligibility(eligibilityJSON)
	if err != nil {
		return nil, err
	}

	return coupon.NewCoupon(
		id, code, description, discountType, discountValue,
		maxDiscount, startDate, endDate, usageLimitPerUser, eligibility,
	)
}

func marshalEligibility(e *coupon.Eligibility) ([]byte, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(eligibilityRecord{
		AllowedUserTiers:     e.AllowedUserTiers,
		MinLifetimeSpend:     e.MinLifetimeSpend,
		MinOrdersPlaced:      e.MinOrdersPlaced,
		FirstOrderOnly:       e.FirstOrderOnly,
		AllowedCountries:     e.AllowedCountries,
		MinCartValue:         e.MinCartValue,
		ApplicableCategories: e.ApplicableCategories,
		ExcludedCategories:   e.ExcludedCategories,
		MinItemsCount:        e.MinItemsCount,
	})
}

func unmarshalEligibility(data []byte) (*coupon.Eligibility, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rec eligibilityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &coupon.Eligibility{
		AllowedUserTiers:     rec.AllowedUserTiers,
		MinLifetimeSpend:     rec.MinLifetimeSpend,
		MinOrdersPlaced:      rec.MinOrdersPlaced,
		FirstOrderOnly:       rec.FirstOrderOnly,
		AllowedCountries:     rec.AllowedCountries,
		MinCartValue:         rec.MinCartValue,
		ApplicableCategories: rec.ApplicableCategories,
		ExcludedCategories:   rec.ExcludedCategories,
		MinItemsCount:        rec.MinItemsCount,
	}, nil
}
