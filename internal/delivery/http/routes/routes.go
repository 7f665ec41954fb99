package routes

import (
	"mentorlink/internal/config"
	"mentorlink/internal/database"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	logger *zap.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, logger *zap.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: redis, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	app.Get("/health", func(c fiber.Ctx) error {
		status := fiber.Map{"database": "up"}
		if err := r.db.Ping(c.Context()); err != nil {
			status["database"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, "degraded", status)
		}
		if r.cache != nil {
			status["cache"] = "up"
			if err := r.cache.Ping(c.Context()); err != nil {
				status["cache"] = "down"
			}
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, status)
	})
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.logger)
}
