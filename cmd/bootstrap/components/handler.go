package components

import (
	"food-rescue/internal/handler"
	"food-rescue/internal/handler/api"
	"food-rescue/internal/handler/middleware"
	"food-rescue/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewPostHandler,
		fx.Annotate(
			api.NewAdminHandler,
			fx.From(new(*sweeper.Sweeper)),
		),
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
