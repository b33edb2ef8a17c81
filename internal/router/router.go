package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"ticketscan/internal/config"
	"ticketscan/internal/handler"
	"ticketscan/internal/middleware"
	"ticketscan/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	corsCfg config.CORSConfig,
	adminSvc service.AdminService,
	adminH *handler.AdminHandler,
	licenseH *handler.LicenseHandler,
	receiptH *handler.ReceiptHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsCfg))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/admin", adminH.Page)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// App-facing routes
	api.POST("/enhance-text", receiptH.EnhanceText)
	api.POST("/test-cleanup", receiptH.TestCleanup)
	api.POST("/validate", licenseH.Validate)
	api.POST("/admin-login", adminH.Login)

	// Admin routes - require an admin session token
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(adminSvc))
	admin.POST("/generate", licenseH.Generate)
	admin.GET("/licenses", licenseH.List)
	admin.GET("/licenses/export", licenseH.Export)

	return r
}
