package routes

import (
	"mentorlink/internal/config"
	"mentorlink/internal/database"
	v1 "mentorlink/internal/delivery/http/routes/v1"
	"mentorlink/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *zap.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redis, logger)
}
