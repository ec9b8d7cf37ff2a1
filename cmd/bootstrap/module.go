package bootstrap

import (
	"coupon-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
	SeedModule,
)
