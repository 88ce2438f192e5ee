package components

import (
	"context"
	"log/slog"

	"food-rescue/internal/infra/cache"
	"food-rescue/internal/infra/db"
	"food-rescue/internal/infra/memstore"
	"food-rescue/internal/infra/notifier"
	"food-rescue/internal/infra/repository"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/config"
	"food-rescue/internal/usecase/queries"
	"food-rescue/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
		fx.Annotate(
			NewPostCache,
			fx.As(fx.Self()),
			fx.As(new(queries.PostCache)),
		),
		fx.Annotate(
			NewNotificationGateway,
			fx.ParamTags(``, `name:"delivery"`),
		),
	),
)

// Stores are chosen by STORE_DRIVER. Delivery is the gateway that records events; the
// engine receives it wrapped by NewNotificationGateway.
type Stores struct {
	fx.Out

	Posts    shared.PostStore
	Users    shared.UserStore
	Delivery shared.NotificationGateway `name:"delivery"`
}

func NewStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Info("using in-memory store")
		return Stores{
			Posts:    memstore.NewPostStore(clk),
			Users:    memstore.NewUserStore(logger),
			Delivery: notifier.NewLogGateway(logger),
		}, nil
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return Stores{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(cfg.DB, logger); err != nil {
			cleanup()
			return Stores{}, err
		}
	}

	return Stores{
		Posts:    repository.NewPostStore(pool, clk, logger),
		Users:    repository.NewUserRepository(pool, logger),
		Delivery: notifier.NewOutboxGateway(repository.NewNotificationRepository(pool, logger), clk, logger),
	}, nil
}

func NewPostCache(cfg config.Config) *cache.PostCache {
	return cache.NewPostCache(cfg.Cache.Size, cfg.Cache.TTL)
}

func NewNotificationGateway(c *cache.PostCache, delivery shared.NotificationGateway) shared.NotificationGateway {
	return cache.NewInvalidatingGateway(c, delivery)
}
