package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Home describes the API
func (h *HealthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the SuperTask API!",
		"version": "1.0.0",
		"status":  "online",
		"endpoints": gin.H{
			"auth":       "/api/auth/",
			"tasks":      "/api/tasks/",
			"categories": "/api/categories/",
			"dashboard":  "/api/dashboard/stats/",
			"health":     "/health",
		},
	})
}

// Health reports whether the database is reachable
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		zap.L().Error("health check failed", zap.Error(err))
		apierrors.ServiceUnavailable(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "SuperTask API is running",
	})
}
