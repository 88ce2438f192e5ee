package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"food-rescue/internal/domain/user"
	"food-rescue/internal/handler/api"
	"food-rescue/internal/handler/middleware"
	"food-rescue/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *slog.Logger
	AuthHandler    *api.AuthHandler
	PostHandler    *api.PostHandler
	AdminHandler   *api.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogging(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	auth := p.AuthMiddleware

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			addRoutes(authGroup, []route{
				{Method: http.MethodPost, Path: "/register", Handler: p.AuthHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login},
			})

			authRequired := authGroup.Group("")
			authRequired.Use(auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: p.AuthHandler.Me},
			})
		}

		donorOnly := []gin.HandlerFunc{auth.RequireRole(user.RoleDonor)}
		recipientOnly := []gin.HandlerFunc{auth.RequireRole(user.RoleRecipient)}

		posts := apiGroup.Group("/posts")
		posts.Use(auth.RequireAuth())
		{
			addRoutes(posts, []route{
				{Method: http.MethodGet, Path: "", Handler: p.PostHandler.Feed},
				{Method: http.MethodGet, Path: "/mine", Handler: p.PostHandler.Mine},
				{Method: http.MethodGet, Path: "/:id", Handler: p.PostHandler.GetPost},
				{Method: http.MethodPost, Path: "", Handler: p.PostHandler.CreatePost, Mw: donorOnly},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.PostHandler.Cancel, Mw: donorOnly},
				{Method: http.MethodPost, Path: "/:id/reservation", Handler: p.PostHandler.Reserve, Mw: recipientOnly},
				{Method: http.MethodDelete, Path: "/:id/reservation", Handler: p.PostHandler.CancelReservation, Mw: recipientOnly},
				{Method: http.MethodPost, Path: "/:id/acceptance", Handler: p.PostHandler.Accept, Mw: recipientOnly},
			})
		}

		if gin.Mode() == gin.DebugMode {
			addRoutes(apiGroup.Group("/admin"), []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: p.AdminHandler.Sweep},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			// Mw slices are shared between routes; appending in place would alias them.
			h = chainHandlers(slices.Concat(r.Mw, []gin.HandlerFunc{r.Handler})...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
