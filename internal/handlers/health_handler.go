package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Check)
}

// Check pings the database.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		apperrors.HandleError(c, apperrors.UnavailableError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
