package bootstrap

import (
	"context"

	"coupon-service/internal/infra/memstore"
	"coupon-service/internal/infra/pgstore"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"go.uber.org/fx"
)

// CouponStore joins the write and read store ports; both backends implement
// the full surface.
type CouponStore interface {
	commands.CouponRepository
	queries.CouponReadStore
}

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			NewCouponStore,
			fx.As(new(commands.CouponRepository)),
			fx.As(new(queries.CouponReadStore)),
		),
	),
)

func NewCouponStore(lc fx.Lifecycle, cfg config.Config) (CouponStore, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return memstore.NewCouponStore(), nil
	case "postgres":
		pool, err := pgstore.NewPool(context.Background(), cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		if err := pgstore.RunMigrations(context.Background(), pool); err != nil {
			pool.Close()
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				pool.Close()
				return nil
			},
		})

		return pgstore.NewCouponStore(pool), nil
	default:
		return nil, errs.New("unknown STORE_DRIVER: " + cfg.Store.Driver)
	}
}
