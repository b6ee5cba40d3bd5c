package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Yassinemathlouthi/skillswap/internal/database"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, rc *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: rc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
}

// Ready checks the dependencies. The cache is optional, so an unreachable
// Redis degrades the report without failing it.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "up"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "bypassed"
	}

	status := fiber.StatusOK
	if dbStatus != "up" {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, response.MessageOK, fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
