package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roadsafe/handlers"
	"roadsafe/middleware"
	"roadsafe/models"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterAnnotatorRoutes registers labeling endpoints.
func RegisterAnnotatorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/annotator")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAnnotator))
		api.POST("/roads", hb.CreateRoadHandler)
		api.GET("/roads", hb.ListMyRoadsHandler)
		api.GET("/roads/:roadId", hb.GetRoadHandler)
		api.POST("/labels", hb.SubmitLabelHandler)
		api.GET("/labels", hb.ListMyLabelsHandler)
		api.GET("/assignments", hb.MyAssignmentsHandler)
		api.PUT("/assignments/:feedbackId/remarks", hb.AddAssignmentRemarksHandler)
	}
}

// RegisterAdminRoutes registers review and moderation endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		api.GET("/dashboard", hb.DashboardHandler)

		api.GET("/reviews/pending", hb.ListPendingReviewsHandler)
		api.GET("/labels/:labelId", hb.GetLabelHandler)
		api.PUT("/labels/:labelId/approve", hb.ApproveLabelHandler)
		api.PUT("/labels/:labelId/reject", hb.RejectLabelHandler)

		api.GET("/annotators", hb.ListAnnotatorsHandler)
		api.GET("/annotators/suspended", hb.ListSuspendedAnnotatorsHandler)
		api.GET("/annotators/at-risk", hb.ListAtRiskAnnotatorsHandler)
		api.PUT("/annotators/:annotatorId/reactivate", hb.ReactivateAnnotatorHandler)
		api.PUT("/annotators/:annotatorId/remarks", hb.TrainingRemarksHandler)

		api.GET("/feedback", hb.ListFeedbackHandler)
		api.PUT("/feedback/:feedbackId/assign", hb.AssignFeedbackHandler)
	}
}

// RegisterTravellerRoutes registers feedback endpoints for travellers.
func RegisterTravellerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/traveller")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleTraveller, models.RoleAdmin))
		api.POST("/feedback", hb.CreateFeedbackHandler)
		api.GET("/feedback", hb.MyFeedbackHandler)
	}
}

// RegisterRatingRoutes registers the public road rating endpoints.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/roads")
	{
		api.GET("", hb.ListRoadsHandler)
		api.GET("/:roadId/rating", hb.RoadRatingHandler)
	}
}

// RegisterNotificationRoutes registers inbox endpoints for any signed-in
// account.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.MyNotificationsHandler)
		api.PUT("/:notificationId/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterAnnotatorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterTravellerRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
