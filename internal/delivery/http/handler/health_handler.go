package handler

import (
	"context"
	"net/http"
	"time"

	"scholarship-portal/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		logger.Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Service is running",
	})
}
