package components

import (
	"context"
	"log/slog"

	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/config"
	"food-rescue/internal/pkg/jwt"
	"food-rescue/internal/pkg/password"
	"food-rescue/internal/usecase"
	"food-rescue/internal/usecase/commands"
	"food-rescue/internal/usecase/queries"
	"food-rescue/internal/usecase/shared"
	"food-rescue/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseSweeperModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	password.NewHasher,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewLifecycleEngine,
		NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewPostQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseSweeperModule = fx.Module("usecase/sweeper",
	fx.Provide(NewSweeper),
	fx.Invoke(startSweeper),
)

func NewLifecycleEngine(
	store shared.PostStore,
	gateway shared.NotificationGateway,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) commands.LifecycleEngine {
	return commands.NewLifecycleEngine(store, gateway, clk, logger,
		commands.WithReservationTTL(cfg.Lifecycle.ReservationTTL),
	)
}

func NewAuthCommands(
	users shared.UserStore,
	tokens *jwt.Service,
	hasher *password.Hasher,
	clk clock.Clock,
	logger *slog.Logger,
) commands.AuthCommands {
	return commands.NewAuthCommands(users, tokens, hasher, clk, logger)
}

func NewSweeper(engine commands.LifecycleEngine, clk clock.Clock, cfg config.Config, logger *slog.Logger) *sweeper.Sweeper {
	return sweeper.New(engine, clk, cfg.Lifecycle.SweepInterval, logger)
}

func startSweeper(lc fx.Lifecycle, s *sweeper.Sweeper) {
	lc.Append(fx.StartStopHook(
		func() { s.Start(context.Background()) },
		s.Stop,
	))
}
