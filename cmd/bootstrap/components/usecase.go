package components

import (
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/password"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewDemoUser,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCouponCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCouponQueries,
		func(demoUser commands.DemoUser) queries.UserQueries {
			return queries.NewUserQueries(demoUser.Profile)
		},
	),
)

// NewDemoUser hashes the configured demo password once at startup and pins
// the fixed profile the rest of the service reports for that account.
func NewDemoUser(cfg config.Config) (commands.DemoUser, error) {
	hash, err := password.HashPassword(cfg.Demo.Password)
	if err != nil {
		return commands.DemoUser{}, err
	}

	return commands.DemoUser{
		Email:        cfg.Demo.Email,
		PasswordHash: hash,
		Profile: queries.UserProfileView{
			UserID:        "demo_hireme",
			Email:         cfg.Demo.Email,
			Tier:          "REGULAR",
			Country:       "IN",
			LifetimeSpend: 10000,
			OrdersPlaced:  5,
		},
	}, nil
}
