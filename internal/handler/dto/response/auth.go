package response

import (
	"github.com/jinzhu/copier"

	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
)

type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	User        ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	UserID        string  `json:"userId"`
	Email         string  `json:"email"`
	Tier          string  `json:"tier"`
	Country       string  `json:"country"`
	LifetimeSpend float64 `json:"lifetimeSpend"`
	OrdersPlaced  int     `json:"ordersPlaced"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	resp := &LoginResponse{AccessToken: result.AccessToken}
	_ = copier.Copy(&resp.User, &result.Profile)
	return resp
}

func FromUserProfile(profile *queries.UserProfileView) *ProfileResponse {
	var resp ProfileResponse
	_ = copier.Copy(&resp, profile)
	return &resp
}
