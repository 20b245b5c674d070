package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"roadsafe/config"
	"roadsafe/database"
	annotatorRepoPkg "roadsafe/database/repository/annotator"
	feedbackRepoPkg "roadsafe/database/repository/feedback"
	labelRepoPkg "roadsafe/database/repository/label"
	notificationRepoPkg "roadsafe/database/repository/notification"
	ratingRepoPkg "roadsafe/database/repository/rating"
	roadRepoPkg "roadsafe/database/repository/road"
	userRepoPkg "roadsafe/database/repository/user"
	"roadsafe/handlers"
	"roadsafe/routes"
	"roadsafe/services/admin"
	"roadsafe/services/annotator"
	"roadsafe/services/feedback"
	"roadsafe/services/notification"
	"roadsafe/services/rating"
	"roadsafe/services/review"
	"roadsafe/services/road"
	"roadsafe/services/user"
	"roadsafe/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	annotatorRepo := annotatorRepoPkg.NewMongoAnnotatorRepo()
	roadRepo := roadRepoPkg.NewMongoRoadRepo()
	labelRepo := labelRepoPkg.NewMongoLabelRepo()
	ratingRepo := ratingRepoPkg.NewMongoRatingRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	notifier := notification.NewService(notificationRepo, userRepo)
	reliability := annotator.NewService(annotatorRepo)
	ratingEngine := rating.NewDefaultEngine(roadRepo, labelRepo, ratingRepo, utils.GetCacheClient())
	feedbackService := feedback.NewService(feedbackRepo, annotatorRepo, notifier)
	reviewService := review.NewService(labelRepo, roadRepo, annotatorRepo, reliability, feedbackService, ratingEngine, notifier)
	roadService := road.NewService(roadRepo, annotatorRepo)
	userService := user.NewDefaultUserService(userRepo, annotatorRepo)
	adminService := admin.NewService(roadRepo, labelRepo, annotatorRepo, feedbackService)

	handlerBundle := handlers.NewHandlerBundle(
		userService,
		roadService,
		reviewService,
		reliability,
		feedbackService,
		ratingEngine,
		notifier,
		adminService,
	)

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
