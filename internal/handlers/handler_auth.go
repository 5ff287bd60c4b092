package handlers

import (
	"log/slog"
	"net/http"

	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/goldloans/pawnshop_ledger/internal/platform/config"
	"github.com/goldloans/pawnshop_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler issues bearer tokens against the configured admin credential.
type authHandler struct {
	cfg *config.Config
}

// registerAuthRoutes registers the public token endpoint.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := &authHandler{cfg: cfg}

	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if h.cfg.AdminPasswordHash == "" ||
		req.Username != h.cfg.AdminUsername ||
		!utils.CheckPasswordHash(req.Password, h.cfg.AdminPasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(req.Username, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryDuration)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.cfg.JWTExpiryDuration.Seconds()),
	})
}
