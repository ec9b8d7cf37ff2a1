package queries

import (
	"context"

	"coupon-service/internal/pkg/errs"
)

var ErrUserNotFound = errs.New("user not found")

// UserProfileView is the fixed demo profile attached to the single accepted
// credential pair.
type UserProfileView struct {
	UserID        string  `json:"userId"`
	Email         string  `json:"email"`
	Tier          string  `json:"tier"`
	Country       string  `json:"country"`
	LifetimeSpend float64 `json:"lifetimeSpend"`
	OrdersPlaced  int     `json:"ordersPlaced"`
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID string) (*UserProfileView, error)
}

type userQueriesImpl struct {
	profile UserProfileView
}

func NewUserQueries(profile UserProfileView) UserQueries {
	return &userQueriesImpl{profile: profile}
}

func (q *userQueriesImpl) GetCurrentUser(_ context.Context, userID string) (*UserProfileView, error) {
	if userID != q.profile.UserID {
		return nil, ErrUserNotFound
	}
	profile := q.profile
	return &profile, nil
}
