package routes

import (
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.HandleMethodNotAllowed = true
	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Not found"))
	})
	ginRouter.NoMethod(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewMethodNotAllowedError(c.Request.Method))
	})

	api := ginRouter.Group("/api")
	{
		appHandlers.ContentHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
	}

	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	if appHandlers.MediaHandler != nil {
		appHandlers.MediaHandler.RegisterRoutes(ginRouter)
		logger.Info("Media route /media/*key registered")
	}
}
