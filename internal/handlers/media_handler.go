package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// MediaHandler streams assets kept in local storage under /media/.
type MediaHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewMediaHandler(base *BaseHandler, store storage.Storage) *MediaHandler {
	return &MediaHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *MediaHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/media/*key", h.ServeFile)
	r.HEAD("/media/*key", h.ServeFile)
}

// ServeFile serves a file by storage key
func (h *MediaHandler) ServeFile(c *gin.Context) {
	ctx := c.Request.Context()

	key, err := storage.CleanKey(c.Param("key"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
			return
		}
		apperrors.HandleError(c, apperrors.StorageError(err))
		return
	}
	defer reader.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Content-Type-Options", "nosniff")
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		c.Header("Content-Type", ct)
	}

	// local files are seekable: ServeContent adds Range and conditional GET support
	if rs, ok := reader.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, path.Base(key), time.Time{}, rs)
		return
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// заголовки уже отправлены
		logger.CtxWithError(ctx, "Media stream interrupted", err, "key", key)
	}
}
