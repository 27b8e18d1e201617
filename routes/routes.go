// File: /routes/routes.go
package routes

import (
	"time"

	"etkinlik-api/config"
	"etkinlik-api/controllers"
	"etkinlik-api/middleware"
	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupCORS allows the public site and the admin panel to call the API.
func SetupCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, log *logrus.Logger) {
	utils.RegisterValidators()

	// Repositories
	eventRepo := repositories.NewEventRepository(db)
	venueRepo := repositories.NewVenueRepository(db)
	pendingRepo := repositories.NewPendingRepository(db)
	eventCategoryRepo := repositories.NewCategoryRepository(db, models.EventCategoryTable)
	venueCategoryRepo := repositories.NewCategoryRepository(db, models.VenueCategoryTable)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	userRepo := repositories.NewUserRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)
	syncRepo := repositories.NewSyncRepository(db)

	// Services
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AdminSessionTTL, cfg.Auth.UserTokenTTL)
	favoriteSync := services.NewFavoriteSyncService(favoriteRepo, log)
	uploads := services.NewUploadService(cfg.Upload, log)
	locations := services.NewLocationService(venueRepo, eventRepo)

	// Controllers
	eventController := controllers.NewEventController(eventRepo, log)
	venueController := controllers.NewVenueController(venueRepo, log)
	pendingController := controllers.NewPendingController(pendingRepo, log)
	eventCategoryController := controllers.NewCategoryController(eventCategoryRepo, log)
	venueCategoryController := controllers.NewCategoryController(venueCategoryRepo, log)
	favoriteController := controllers.NewFavoriteController(favoriteRepo, eventRepo, favoriteSync, log)
	authController := controllers.NewAuthController(userRepo, emailService, tokens, log)
	adminAuthController := controllers.NewAdminAuthController(cfg.Auth, emailService, tokens, log)
	userController := controllers.NewUserController(userRepo, log)
	reviewController := controllers.NewReviewController(reviewRepo, eventRepo, log)
	announcementController := controllers.NewAnnouncementController(announcementRepo, log)
	uploadController := controllers.NewUploadController(uploads, log)
	syncController := controllers.NewSyncController(syncRepo, log)
	locatorController := controllers.NewLocatorController(locations, log)

	submissionLimit := middleware.RateLimit(cfg.RateLimit.SubmissionsPerMinute, cfg.RateLimit.SubmissionBurst)
	authLimit := middleware.RateLimit(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	requireAdmin := middleware.AdminAuth(tokens)
	requireUser := middleware.UserAuth(tokens)
	optionalUser := middleware.OptionalUser(tokens)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.Static(cfg.Upload.PublicPrefix, cfg.Upload.Dir)

	api := r.Group("/api")
	api.Use(middleware.ValidateJSON("/upload"))

	// Public read routes
	{
		api.GET("/events", eventController.GetEvents)
		api.GET("/events/:id", eventController.GetEvent)
		api.GET("/events/:id/reviews", reviewController.GetEventReviews)
		api.GET("/venues", venueController.GetVenues)
		api.GET("/venues/:id", venueController.GetVenue)
		api.GET("/categories", eventCategoryController.GetCategories)
		api.GET("/categories/:id", eventCategoryController.GetCategory)
		api.GET("/venue-categories", venueCategoryController.GetCategories)
		api.GET("/venue-categories/:id", venueCategoryController.GetCategory)
		api.GET("/announcements/active", announcementController.GetActiveAnnouncements)
		api.GET("/sync/status", syncController.GetStatus)
		api.GET("/nearby/venues", locatorController.GetNearbyVenues)
		api.GET("/nearby/events", locatorController.GetNearbyEvents)
	}

	// Public writes, rate limited per IP
	{
		api.POST("/submissions/events", submissionLimit, pendingController.SubmitEvent)
		api.POST("/submissions/venues", submissionLimit, pendingController.SubmitVenue)
		api.POST("/events/:id/reviews", submissionLimit, optionalUser, reviewController.CreateReview)
		api.DELETE("/reviews/:id", submissionLimit, optionalUser, reviewController.DeleteOwnReview)
		api.POST("/upload", submissionLimit, uploadController.Upload)
	}

	// Auth routes
	auth := api.Group("/auth", authLimit)
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
	}
	api.POST("/admin/send-verification", authLimit, adminAuthController.SendVerification)
	api.PUT("/admin/send-verification", authLimit, adminAuthController.VerifyCode)

	// Signed-in users
	user := api.Group("", requireUser)
	{
		user.GET("/users/me", userController.GetProfile)
		user.PUT("/users/me", userController.UpdateProfile)

		user.GET("/favorites", favoriteController.GetFavorites)
		user.POST("/favorites", favoriteController.AddFavorite)
		user.DELETE("/favorites", favoriteController.RemoveFavorite)
		user.POST("/favorites/sync", favoriteController.SyncFavorites)
	}

	// Admin panel
	admin := api.Group("", requireAdmin)
	{
		admin.GET("/admin/session", adminAuthController.Session)

		// Moderation queue
		admin.GET("/pending-events", pendingController.GetPendingEvents)
		admin.POST("/pending-events", pendingController.ResolvePendingEvent)
		admin.GET("/pending-events/:id", pendingController.GetPendingEvent)
		admin.PUT("/pending-events/:id", pendingController.UpdatePendingEvent)
		admin.GET("/pending-venues", pendingController.GetPendingVenues)
		admin.POST("/pending-venues", pendingController.ResolvePendingVenue)
		admin.GET("/pending-venues/:id", pendingController.GetPendingVenue)
		admin.PUT("/pending-venues/:id", pendingController.UpdatePendingVenue)

		// Events
		admin.GET("/admin/events", eventController.GetAllEvents)
		admin.POST("/events", eventController.CreateEvent)
		admin.PUT("/events/:id", eventController.UpdateEvent)
		admin.PATCH("/events/:id/status", eventController.UpdateEventStatus)
		admin.DELETE("/events/:id", eventController.DeleteEvent)

		// Venues
		admin.GET("/admin/venues", venueController.GetAllVenues)
		admin.POST("/venues", venueController.CreateVenue)
		admin.PUT("/venues", venueController.UpdateVenue)
		admin.DELETE("/venues", venueController.DeleteVenue)

		// Categories
		for prefix, cc := range map[string]*controllers.CategoryController{
			"/categories":       eventCategoryController,
			"/venue-categories": venueCategoryController,
		} {
			admin.POST(prefix, cc.CreateCategory)
			admin.PUT(prefix+"/:id", cc.UpdateCategory)
			admin.DELETE(prefix+"/:id", cc.DeleteCategory)
			admin.POST(prefix+"/reorder", cc.ReorderCategories)
			admin.POST(prefix+"/:id/move", cc.MoveCategory)
		}

		// Users and reviews
		admin.GET("/admin/users", userController.GetUsers)
		admin.PATCH("/admin/users/:id/status", userController.SetUserStatus)
		admin.DELETE("/admin/users/:id", userController.DeleteUser)
		admin.GET("/admin/reviews", reviewController.GetAllReviews)
		admin.DELETE("/admin/reviews/:id", reviewController.DeleteReview)

		// Announcements
		admin.GET("/admin/announcements", announcementController.GetAnnouncements)
		admin.POST("/admin/announcements", announcementController.CreateAnnouncement)
		admin.PUT("/admin/announcements/:id", announcementController.UpdateAnnouncement)
		admin.DELETE("/admin/announcements/:id", announcementController.DeleteAnnouncement)
	}
}
