package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// migrationHandler handles HTTP requests for migration verification.
type migrationHandler struct {
	migrationSvc portssvc.MigrationSvcFacade
}

// registerMigrationRoutes registers migration routes within a company.
func registerMigrationRoutes(rg *gin.RouterGroup, migrationSvc portssvc.MigrationSvcFacade) {
	h := &migrationHandler{migrationSvc: migrationSvc}

	migration := rg.Group("/migration")
	{
		migration.POST("/verify", h.verifyMigration)
	}
}

// verifyMigration audits the migrated ledger against a legacy batch and
// returns the violation report. It never modifies data.
func (h *migrationHandler) verifyMigration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.VerifyMigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VerifyMigration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	legacy := dto.ToDomainLegacyTransactions(req.Transactions)
	violations, err := h.migrationSvc.VerifyMigration(c.Request.Context(), companyID, legacy)
	if err != nil {
		logger.Error("Migration verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify migration"})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyMigrationResponse{
		Checked:    len(legacy),
		Violations: dto.ToMigrationViolationResponses(violations),
	})
}
