package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/database"
	dbpostgres "github.com/Yassinemathlouthi/skillswap/internal/database/postgres"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
)

// Container owns the process-wide dependencies shared by every request.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("Container | redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
