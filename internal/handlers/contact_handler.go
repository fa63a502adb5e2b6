package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxContactBody bounds the request body; the message column itself is unbounded.
const maxContactBody = 1 << 20

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
	rateLimit      int // requests per minute per IP, 0 disables
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService, rateLimit int) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
		rateLimit:      rateLimit,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	limit := middleware.RateLimit(h.rateLimit, time.Minute, func(c *gin.Context) {
		h.respondError(c, apperrors.ErrTooManyRequests)
	})
	r.POST("/contact/", limit, h.Submit)
}

// Submit accepts {name, email, subject?, message}. An empty body counts as {}.
func (h *ContactHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.CtxWarn(ctx, "Contact body too large", "limit", tooLarge.Limit)
			h.respondError(c, apperrors.ErrContactBodyTooLarge)
			return
		}
		logger.CtxWarn(ctx, "Contact body unreadable", "error", err.Error())
		h.respondError(c, apperrors.ErrInvalidJSON)
		return
	}

	var req dto.ContactRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		// BindBody stops after the first value, trailing garbage must be rejected here
		if !json.Valid(raw) {
			logger.CtxWarn(ctx, "Contact body is not valid JSON")
			h.respondError(c, apperrors.ErrInvalidJSON)
			return
		}
		if err := binding.JSON.BindBody(raw, &req); err != nil {
			logger.CtxWarn(ctx, "Contact body is not a JSON object of strings", "error", err.Error())
			h.respondError(c, apperrors.ErrInvalidJSON)
			return
		}
	}

	if err := h.contactService.Submit(ctx, h.GetDB(c), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponse{Success: true})
}

// respondError answers in the contact envelope {success: false, error}.
func (h *ContactHandler) respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "Contact submission failed", err, "path", c.Request.URL.Path)
	} else {
		logger.CtxWarn(ctx, "Contact submission rejected", "error", appErr.Message)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, dto.ContactResponse{Success: false, Error: appErr.Message})
}
