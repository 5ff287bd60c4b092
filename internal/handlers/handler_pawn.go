package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/core/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pawnHandler handles HTTP requests for pawn business events.
type pawnHandler struct {
	pawnSvc portssvc.PawnSvcFacade
}

// registerPawnRoutes registers pawn event routes within a company.
func registerPawnRoutes(rg *gin.RouterGroup, pawnSvc portssvc.PawnSvcFacade) {
	h := &pawnHandler{pawnSvc: pawnSvc}

	rg.POST("/pawn/events", h.postPawnEvent)
}

// postPawnEvent expands a pawn business event into a balanced voucher.
func (h *pawnHandler) postPawnEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.PostPawnEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostPawnEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.pawnSvc.PostPawnEvent(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnbalanced):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPawnAmountInvalid),
			errors.Is(err, services.ErrChartIncomplete),
			isVoucherValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post pawn event", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post pawn event"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}
