package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parking-be-svc/internal/middleware"
	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	billingService service.BillingService,
	userService service.UserService,
	settingsService service.SettingsService,
	exportService service.ExportService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(userService, logger)
	billingHandler := NewBillingHandler(billingService, logger)
	reportHandler := NewReportHandler(billingService, logger)
	userHandler := NewUserHandler(userService, logger)
	settingsHandler := NewSettingsHandler(settingsService, logger)
	exportHandler := NewExportHandler(exportService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Authenticated routes
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(jwtSecret))
		{
			authed.GET("/options", billingHandler.GetFormOptions)
			authed.POST("/bills", billingHandler.GenerateBill)
			authed.GET("/bills", billingHandler.ListBilled)
			authed.GET("/reports", reportHandler.GetReports)

			// Master-only routes
			master := authed.Group("")
			master.Use(middleware.RequireMaster())
			{
				master.DELETE("/bills", billingHandler.ResetBilled)

				users := master.Group("/users")
				{
					users.GET("", userHandler.ListUsers)
					users.POST("", userHandler.CreateUser)
					users.PUT("/:username/password", userHandler.ChangePassword)
					users.DELETE("/:username", userHandler.DeleteUser)
				}

				settings := master.Group("/settings")
				{
					settings.GET("", settingsHandler.GetSettings)
					settings.PUT("", settingsHandler.UpdateSettings)
				}

				export := master.Group("/export")
				{
					export.GET("/snapshot", exportHandler.ExportSnapshot)
					export.GET("/records.csv", exportHandler.ExportRecordsCSV)
					export.GET("/records.xlsx", exportHandler.ExportRecordsExcel)
				}
			}
		}
	}
}

// HealthCheck reports service liveness
// @Summary Health check
// @Description Report service liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is running"
// @Router /api/v1/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Parking Billing Service",
	})
}
