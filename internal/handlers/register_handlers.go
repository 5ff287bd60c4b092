package handlers

import (
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/goldloans/pawnshop_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCompanyRoutes(v1, services.Company)

	// Everything below is scoped to one company
	companyGroup := v1.Group("/companies/:companyID")
	registerAccountRoutes(companyGroup, services.Account, services.Balance, services.Voucher)
	registerVoucherRoutes(companyGroup, services.Voucher)
	registerReportingRoutes(companyGroup, services.Balance)
	registerMigrationRoutes(companyGroup, services.Migration)
	registerPawnRoutes(companyGroup, services.Pawn)
}
