package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/database"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/handler"
	v1 "github.com/Yassinemathlouthi/skillswap/internal/delivery/http/routes/v1"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
	"github.com/Yassinemathlouthi/skillswap/internal/metrics"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/jwt"
	"github.com/Yassinemathlouthi/skillswap/internal/ws"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	jwtSvc jwt.Service
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, rc *cache.Redis, jwtSvc jwt.Service, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: rc, jwtSvc: jwtSvc, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	handler.NewHealthHandler(r.db, r.cache).RegisterRoutes(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

func (r *Registry) registerWS(app *fiber.App) {
	wsHandler := ws.NewHandler(r.hub, r.jwtSvc, r.logger)
	app.Get("/ws", wsHandler.HandleEventsWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Config: r.cfg,
		DB:     r.db,
		Cache:  r.cache,
		JWT:    r.jwtSvc,
		Hub:    r.hub,
		Logger: r.logger,
	})
}
