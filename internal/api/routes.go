package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coloring-studio-backend-go/internal/config"
	"coloring-studio-backend-go/internal/core"
	"coloring-studio-backend-go/internal/db"
	"coloring-studio-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (logging, recovery, CORS) is applied to the router before
// this function is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	paymentService core.PaymentService,
	generationService core.GenerationService,
) {
	paymentHandler := NewPaymentHandler(paymentService)
	generationHandler := NewGenerationHandler(generationService, appConfig.FreeGenerationLimit)

	// Authentication is delegated to Firebase on the client; the ID-token
	// gate is optional here and enabled by REQUIRE_AUTH. When enabled, the
	// verified UID must match the userId in the request body.
	var guards []gin.HandlerFunc
	if appConfig.RequireAuth {
		firebaseAuthClient := db.GetFirebaseAuthClient()
		if firebaseAuthClient == nil {
			logger.Fatal("CRITICAL_SETUP_ERROR: REQUIRE_AUTH is enabled but the Firebase Auth client is not initialized.")
		}
		authMW := middleware.NewAuthMiddleware(firebaseAuthClient)
		guards = append(guards, authMW.VerifyToken())
		logger.Info("Firebase ID-token verification enabled for API routes.")
	}

	// The payment callback and generation endpoints are served both at the
	// root (the paths the web client calls) and under /api/v1.
	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api/v1")} {
		g := group.Group("", guards...)
		g.POST("/verify-payment", paymentHandler.VerifyPayment)
		g.POST("/generate-image", generationHandler.GenerateImage)
	}

	apiV1 := router.Group("/api/v1", guards...)
	apiV1.GET("/users/:userId/entitlement", generationHandler.GetEntitlement)

	// Liveness endpoint, deliberately outside /api/v1 and unauthenticated.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Coloring studio backend is healthy."})
	})

	logger.Info("API routes configured successfully.")
}
