package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode    = errors.New("invalid coupon code format")
	ErrInvalidDiscountType  = errors.New("invalid discount type")
	ErrInvalidDiscountValue = errors.New("discount value must be positive")
	ErrInvalidMaxDiscount   = errors.New("max discount amount must be positive")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInvalidUsageLimit    = errors.New("usage limit per user must be at least 1")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

// Code is a normalized coupon code. Input is trimmed and uppercased before
// validation, so "  gold10 " and "GOLD10" identify the same coupon.
type Code string

func NewCode(raw string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountFlat    DiscountType = "FLAT"
	DiscountPercent DiscountType = "PERCENT"
)

func NewDiscountType(raw string) (DiscountType, error) {
	switch DiscountType(raw) {
	case DiscountFlat, DiscountPercent:
		return DiscountType(raw), nil
	default:
		return DiscountType(""), ErrInvalidDiscountType
	}
}

func (t DiscountType) String() string {
	return string(t)
}
