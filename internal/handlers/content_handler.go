package handlers

import (
	"net/http"

	"portfolio_backend/internal/pagination"
	"portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile/", h.GetProfile)
	r.GET("/research/", h.ListResearch)
	r.GET("/publications/", h.ListPublications)
	r.GET("/projects/", h.ListProjects)
	r.GET("/awards/", h.ListAwards)
	r.GET("/gallery/", h.ListGallery)
	r.GET("/cv/", h.GetCV)
	r.GET("/stats/", h.GetStats)
}

func (h *ContentHandler) GetProfile(c *gin.Context) {
	resp, err := h.contentService.GetProfile(c.Request.Context(), h.GetDB(c), h.GetBaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) ListResearch(c *gin.Context) {
	page, perPage := ParsePagination(c, pagination.DefaultPerPage)
	resp, err := h.contentService.ListResearch(c.Request.Context(), h.GetDB(c), page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) ListPublications(c *gin.Context) {
	page, perPage := ParsePagination(c, pagination.DefaultPerPage)
	resp, err := h.contentService.ListPublications(c.Request.Context(), h.GetDB(c), page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) ListProjects(c *gin.Context) {
	page, perPage := ParsePagination(c, pagination.DefaultPerPage)
	resp, err := h.contentService.ListProjects(c.Request.Context(), h.GetDB(c), page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) ListAwards(c *gin.Context) {
	page, perPage := ParsePagination(c, pagination.DefaultPerPage)
	resp, err := h.contentService.ListAwards(c.Request.Context(), h.GetDB(c), h.GetBaseURL(c), page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) ListGallery(c *gin.Context) {
	page, perPage := ParsePagination(c, pagination.DefaultGalleryPerPage)
	resp, err := h.contentService.ListGallery(c.Request.Context(), h.GetDB(c), h.GetBaseURL(c), page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) GetCV(c *gin.Context) {
	resp, err := h.contentService.GetActiveCV(c.Request.Context(), h.GetDB(c), h.GetBaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) GetStats(c *gin.Context) {
	resp, err := h.contentService.GetStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
