package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"boardbill-be-svc/internal/config"
	"boardbill-be-svc/internal/middleware"
	"boardbill-be-svc/internal/service"
	"boardbill-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	cycleService service.CycleService,
	billService service.BillService,
	paymentService service.PaymentService,
	logger *logger.Logger,
) {
	// Initialize handlers
	cycleHandler := NewCycleHandler(cycleService, logger)
	billHandler := NewBillHandler(billService, logger)
	paymentHandler := NewPaymentHandler(paymentService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded receipts are served directly from disk
	router.Static(cfg.Storage.PublicBaseURL, cfg.Storage.ReceiptDir)

	auth := middleware.Authenticate(cfg.JWT.Secret)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Cycle routes
		cycles := v1.Group("/cycles", auth)
		{
			cycles.GET("", cycleHandler.ListCycles)
			cycles.POST("", adminOnly, cycleHandler.UpsertCycle)
			cycles.POST("/:month_key/reconcile", adminOnly, cycleHandler.ReconcileCycle)
		}

		// Bill routes
		bills := v1.Group("/bills", auth)
		{
			bills.GET("/my", billHandler.GetMyBills)
			bills.GET("/pending", adminOnly, billHandler.GetPendingBills)
			bills.GET("/export", adminOnly, billHandler.ExportBills)
		}

		// Payment routes
		payments := v1.Group("/payments", auth)
		{
			payments.POST("", paymentHandler.SubmitPayment)
			payments.POST("/decide", adminOnly, paymentHandler.DecidePayment)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Boarding House Billing Service",
	})
}
