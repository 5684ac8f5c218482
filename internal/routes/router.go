package routes

import (
	"scholarship-portal/internal/auth"
	"scholarship-portal/internal/config"
	"scholarship-portal/internal/delivery/http/handler"
	"scholarship-portal/internal/domain/notification"
	"scholarship-portal/internal/domain/storage"
	"scholarship-portal/internal/infrastructure/database/postgres"
	"scholarship-portal/internal/logger"
	"scholarship-portal/internal/middleware"
	"scholarship-portal/internal/usecase/ledger"
	"scholarship-portal/internal/usecase/onboarding"
	"scholarship-portal/internal/usecase/profile"
	"scholarship-portal/internal/usecase/scholarship"
	"scholarship-portal/internal/usecase/user"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators built in main that the routes share.
type Dependencies struct {
	Issuer   *auth.Issuer
	Ledger   *ledger.Ledger
	Notifier notification.Notifier
	Blobs    storage.BlobStore
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, deps Dependencies) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	maxImageBytes := cfg.Storage.MaxImageBytes
	if maxImageBytes <= 0 {
		maxImageBytes = utils.DefaultMaxImageBytes
	}

	router := gin.New()

	// Add middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.UploadBodyLimits(maxImageBytes)))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	userRepository := postgres.NewUserRepository(db)
	profileRepository := postgres.NewProfileRepository(db)
	scholarshipRepository := postgres.NewScholarshipRepository(db)

	userService := user.NewService(userRepository, deps.Ledger, deps.Notifier, deps.Issuer)
	userHandler := handler.NewUserHandler(userService)

	onboardingService := onboarding.NewService(userRepository, profileRepository)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)

	profileService := profile.NewService(userRepository, profileRepository, deps.Blobs, maxImageBytes)
	profileHandler := handler.NewProfileHandler(profileService)

	scholarshipService := scholarship.NewService(scholarshipRepository, userRepository, profileRepository, deps.Blobs, maxImageBytes)
	scholarshipHandler := handler.NewScholarshipHandler(scholarshipService)

	handler.NewHealthHandler(db).RegisterRoutes(router)

	root := router.Group("")
	{
		userHandler.RegisterRoutes(root)
		scholarshipHandler.RegisterRoutes(root)

		protected := root.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Issuer))
		{
			onboardingHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)

			sponsor := protected.Group("")
			sponsor.Use(middleware.SponsorOnly(userRepository))
			{
				scholarshipHandler.RegisterSponsorRoutes(sponsor)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
