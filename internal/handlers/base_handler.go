package handlers

import (
	"fmt"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/pagination"
	"portfolio_backend/pkg/apperrors"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

// BaseHandler holds the helpers shared by every handler.
type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// ============================================================================
// 2. Значения из контекста
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context
// Этот метод ДОЛЖЕН вызываться в каждом хендлере, который обращается к сервисам
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// GetBaseURL returns the base URL set by BaseURLMiddleware, deriving it from
// the request when the middleware is not installed.
func (h *BaseHandler) GetBaseURL(c *gin.Context) string {
	if base := c.GetString(string(contextkeys.BaseURLContextKey)); base != "" {
		return base
	}
	return middleware.RequestBaseURL(c.Request)
}

// ============================================================================
// 3. Обработчики ошибок (с контекстным логгированием)
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 4. Функции парсинга
// ============================================================================

// ParsePagination reads page and per_page leniently: bad values fall back to
// defaults, per_page is capped at pagination.MaxPerPage.
func ParsePagination(c *gin.Context, defaultPerPage int) (page int, perPage int) {
	page = pagination.ParsePage(c.Query("page"))
	perPage = pagination.ParsePerPage(c.Query("per_page"), defaultPerPage, pagination.MaxPerPage)
	return page, perPage
}
