package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/database"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/handler"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/geocoding"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/jwt"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
	"github.com/Yassinemathlouthi/skillswap/internal/ws"
)

// Deps is everything the v1 API needs from the outside world.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(d.JWT)

	userRepo := repository.NewPostgresUserRepository(d.DB)
	skillRepo := repository.NewPostgresSkillRepository(d.DB)
	linkRepo := repository.NewPostgresSkillLinkRepository(d.DB)
	matchRepo := repository.NewPostgresMatchRepository(d.DB)
	nearbyRepo := repository.NewPostgresNearbyRepository(d.DB)
	sessionRepo := repository.NewPostgresSessionRepository(d.DB)
	reviewRepo := repository.NewPostgresReviewRepository(d.DB)
	messageRepo := repository.NewPostgresMessageRepository(d.DB)

	// NewNominatimClient returns a nil pointer when geocoding is disabled;
	// keep the interface itself nil in that case.
	var geocoder geocoding.Geocoder
	if client := geocoding.NewNominatimClient(d.Config.Geocoding, d.Cache, d.Logger); client != nil {
		geocoder = client
	}

	var notifier usecase.Notifier = usecase.NopNotifier{}
	if d.Hub != nil {
		notifier = ws.NewHubNotifier(d.Hub, d.Logger)
	}

	authUC := usecase.NewAuthUsecase(userRepo, d.JWT)
	userUC := usecase.NewUserUsecase(userRepo, linkRepo, reviewRepo, geocoder)
	skillUC := usecase.NewUserSkillUsecase(skillRepo, linkRepo, d.Cache)
	matchUC := usecase.NewMatchingUsecase(linkRepo, matchRepo, skillRepo, d.Config.Matching)
	nearbyUC := usecase.NewNearbyUsecase(userRepo, nearbyRepo, d.Config.Matching)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, userRepo, skillRepo, notifier)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, sessionRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo, notifier)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	userSkillHandler := handler.NewUserSkillHandler(skillUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	nearbyHandler := handler.NewNearbyHandler(nearbyUC)
	sessionHandler := handler.NewSessionHandler(sessionUC)
	reviewHandler := handler.NewReviewHandler(reviewUC)
	messageHandler := handler.NewMessageHandler(messageUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)
	userSkillHandler.RegisterRoutes(usersGroup)

	skillsGroup := protected.Group("/skills")
	skillHandler.RegisterRoutes(skillsGroup)

	matchesGroup := protected.Group("/matches")
	matchHandler.RegisterRoutes(matchesGroup)

	nearbyGroup := protected.Group("/nearby")
	nearbyHandler.RegisterRoutes(nearbyGroup)

	sessionsGroup := protected.Group("/sessions")
	sessionHandler.RegisterRoutes(sessionsGroup)

	reviewsGroup := protected.Group("/reviews")
	reviewHandler.RegisterRoutes(reviewsGroup)

	messagesGroup := protected.Group("/messages")
	messageHandler.RegisterRoutes(messagesGroup)
}
