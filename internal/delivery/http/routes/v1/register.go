package v1

import (
	"mentorlink/internal/config"
	"mentorlink/internal/database"
	"mentorlink/internal/delivery/http/handler"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/infrastructure/persistence/postgres"
	"mentorlink/internal/pkg/jwt"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Register wires repositories, usecases and handlers onto the v1 router.
// Route groups build up in three tiers: public, authenticated, and
// authenticated with a completed profile.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *zap.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	projectRepo := postgres.NewProjectRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, profileRepo, jwtSvc, logger)
	profileUC := usecase.NewProfileUsecase(profileRepo, requestRepo, redis, logger)
	mentorshipUC := usecase.NewMentorshipUsecase(requestRepo, profileRepo, logger)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, requestRepo, profileRepo, logger)
	projectUC := usecase.NewProjectUsecase(projectRepo, logger)
	assistantUC := usecase.NewAssistantUsecase(cfg.Assistant, logger)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	profileMw := middleware.NewProfileMiddleware(profileRepo)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	mentorshipHandler := handler.NewMentorshipHandler(mentorshipUC)
	sessionHandler := handler.NewSessionHandler(sessionUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	assistantHandler := handler.NewAssistantHandler(assistantUC)

	protected := r.Group("", authMw.Middleware())
	withProfile := protected.Group("", profileMw.RequireProfile())

	authHandler.RegisterRoutes(r.Group("/auth"), protected.Group("/auth"))
	profileHandler.RegisterRoutes(r.Group("/profiles"), protected.Group("/profiles"), withProfile.Group("/profiles"))
	mentorshipHandler.RegisterRoutes(withProfile.Group("/mentorship"))
	sessionHandler.RegisterRoutes(withProfile.Group("/sessions"))
	projectHandler.RegisterRoutes(protected.Group("/projects"))
	assistantHandler.RegisterRoutes(protected.Group("/assistant"))
}
