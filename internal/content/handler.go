package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"content-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the content service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches client-facing content routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/briefs/:id/content", h.listBriefContent)
	rg.GET("/content/:id", h.getContent)
}

// RegisterAdminRoutes attaches admin review routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/content", h.listContent)
	rg.GET("/content/review", h.reviewQueue)
	rg.GET("/content/:id", h.getContent)
	rg.POST("/content/:id/approve", h.approveContent)
	rg.POST("/content/:id/reject", h.rejectContent)
}

func (h *Handler) getContent(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch content", nil)
		}
		return
	}
	c.Set("contentId", item.ID)
	respond.JSON(c, http.StatusOK, item)
}

func (h *Handler) listBriefContent(c *gin.Context) {
	briefID := c.Param("id")
	if briefID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "brief id is required", nil)
		return
	}
	items, err := h.Svc.ListByBrief(c.Request.Context(), briefID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list content", nil)
		return
	}
	if items == nil {
		items = []Content{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"content": items, "count": len(items)})
}

func (h *Handler) listContent(c *gin.Context) {
	var needsReview *bool
	if raw := c.Query("needsReview"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "needsReview must be a boolean", nil)
			return
		}
		needsReview = &v
	}
	limit := parseIntDefault(c.Query("limit"), 50)
	offset := parseIntDefault(c.Query("offset"), 0)

	items, err := h.Svc.List(c.Request.Context(), c.Query("deliveryStatus"), needsReview, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list content", nil)
		return
	}
	if items == nil {
		items = []Content{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"content": items, "count": len(items)})
}

func (h *Handler) reviewQueue(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 50)
	offset := parseIntDefault(c.Query("offset"), 0)
	items, err := h.Svc.ReviewQueue(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list review queue", nil)
		return
	}
	if items == nil {
		items = []Content{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"content": items, "count": len(items)})
}

func (h *Handler) approveContent(c *gin.Context) {
	item, err := h.Svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to approve content", nil)
		}
		return
	}
	c.Set("contentId", item.ID)
	c.Set("statusTransition", "review_needed->ready_for_delivery")
	respond.JSON(c, http.StatusOK, item)
}

type rejectRequest struct {
	Feedback string `json:"feedback"`
}

func (h *Handler) rejectContent(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	item, err := h.Svc.Reject(c.Request.Context(), c.Param("id"), req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reject content", nil)
		}
		return
	}
	c.Set("contentId", item.ID)
	respond.JSON(c, http.StatusOK, item)
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
