package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstbook/internal/handler"
	"gstbook/internal/middleware"
	"gstbook/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger logrus.FieldLogger,
	sessionSvc service.SessionService,
	corsOrigins []string,
	gstH *handler.GSTHandler,
	settingsH *handler.SettingsHandler,
	invoiceH *handler.InvoiceHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins...))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require a valid Shopify session token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(sessionSvc))

	// Stateless tax engine
	gst := protected.Group("/gst")
	gst.POST("/calculate", gstH.Calculate)
	gst.GET("/gstin/:gstin", gstH.GSTIN)
	gst.GET("/words", gstH.Words)
	gst.GET("/states", gstH.States)

	// Shop settings
	settings := protected.Group("/settings")
	settings.GET("", settingsH.Get)
	settings.PUT("", settingsH.Upsert)
	settings.GET("/next-invoice-number", settingsH.NextNumber)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.POST("/preview", invoiceH.Preview)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:number", invoiceH.GetByNumber)
	invoices.PATCH("/:number/status", invoiceH.UpdateStatus)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/summary", reportH.Summary)
	reports.GET("/register", reportH.Register)

	return r
}
