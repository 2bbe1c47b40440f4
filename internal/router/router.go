package router

import (
	"github.com/gin-gonic/gin"

	"veridoc/internal/domain"
	"veridoc/internal/handler"
	"veridoc/internal/middleware"
	"veridoc/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	ocrH *handler.OCRHandler,
	recordH *handler.RecordHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Verification routes
	ocr := protected.Group("/ocr")
	ocr.POST("/cin", ocrH.VerifyCIN)
	ocr.POST("/passport", ocrH.VerifyPassport)
	ocr.POST("/pdf", ocrH.VerifyPDF)

	// Record routes
	records := protected.Group("/records")
	records.GET("", recordH.List)
	records.GET("/export/csv", recordH.ExportCSV)
	records.GET("/export/xlsx", recordH.ExportXLSX)
	records.GET("/:id", recordH.GetByID)
	records.GET("/:id/file", recordH.GetFileURL)
	records.DELETE("/:id", recordH.Delete)

	// Admin user management
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.GET("", userH.List)
	users.PATCH("/:id", userH.Update)
	users.DELETE("/:id", userH.Delete)

	return r
}
