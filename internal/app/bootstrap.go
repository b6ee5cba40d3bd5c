package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/database/migration"
	"github.com/Yassinemathlouthi/skillswap/internal/database/seed"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/routes"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/jwt"
	"github.com/Yassinemathlouthi/skillswap/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	hub := ws.NewHub(c.Logger)

	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.AccessSecret,
		c.Config.JWT.RefreshSecret,
		c.Config.JWT.AccessExpiresIn,
		c.Config.JWT.RefreshExpiresIn,
	)

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(c.Config, c.DB, c.Cache, jwtSvc, hub, c.Logger).Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap wires the whole application: dependencies, schema, routes.
// The returned cleanup closes everything the container opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.RunMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := migration.Runner{Dir: "migrations"}.Run(ctx, c.DB.SQLDB())
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if cfg.Database.RunSeeders {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := seed.Run(ctx, c.DB, c.Logger)
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run seeders: %w", err)
		}
	}

	app := New(c)
	go app.Hub.Run()

	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewMetricsMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
