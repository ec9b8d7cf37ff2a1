//go:build unit || integration

package builder

import (
	"time"

	reqdto "coupon-service/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "hire-me@anshumat.org",
		Password: "HireMe@2025!",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

type CouponDTOBuilder struct {
	Code          string
	Description   string
	DiscountType  string
	DiscountValue float64
	StartDate     time.Time
	EndDate       time.Time
}

func NewCouponDTOBuilder() *CouponDTOBuilder {
	return &CouponDTOBuilder{
		Code:          "SAVE10",
		Description:   "10 percent off",
		DiscountType:  "PERCENT",
		DiscountValue: 10,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func (b *CouponDTOBuilder) BuildDTO() reqdto.CreateCouponRequest {
	return reqdto.CreateCouponRequest{
		Code:          b.Code,
		Description:   b.Description,
		DiscountType:  b.DiscountType,
		DiscountValue: b.DiscountValue,
		StartDate:     reqdto.UTCTime{Time: b.StartDate},
		EndDate:       reqdto.UTCTime{Time: b.EndDate},
	}
}

type EvaluationBuilder struct {
	UserID        string
	Tier          *string
	Country       *string
	LifetimeSpend float64
	OrdersPlaced  int
	Items         []reqdto.CartItemRequest
}

func NewEvaluationBuilder() *EvaluationBuilder {
	tier := "GOLD"
	country := "IN"
	return &EvaluationBuilder{
		UserID:        "user-1",
		Tier:          &tier,
		Country:       &country,
		LifetimeSpend: 10000,
		OrdersPlaced:  5,
		Items: []reqdto.CartItemRequest{
			{ProductID: "p1", Category: "electronics", UnitPrice: 1000, Quantity: 1},
		},
	}
}

func (b *EvaluationBuilder) BuildDTO() reqdto.EvaluationRequest {
	return reqdto.EvaluationRequest{
		User: reqdto.UserContextRequest{
			UserID:        b.UserID,
			Tier:          b.Tier,
			Country:       b.Country,
			LifetimeSpend: b.LifetimeSpend,
			OrdersPlaced:  b.OrdersPlaced,
		},
		Cart: reqdto.CartRequest{Items: b.Items},
	}
}
