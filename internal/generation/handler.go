package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-backend/internal/briefs"
	"content-backend/internal/shared/server/middleware"
	"content-backend/internal/shared/server/respond"
	"content-backend/internal/shared/telemetry"
)

// Handler exposes admin triggers for the generation pipeline.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches admin-only generation routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/briefs/:id/run", h.runBrief)
	rg.POST("/briefs/:id/generate", h.generateForBrief)
}

// runBrief re-runs the full pipeline for a brief in the background and
// returns immediately.
func (h *Handler) runBrief(c *gin.Context) {
	briefID := c.Param("id")
	if _, err := h.Svc.Briefs.Get(c.Request.Context(), briefID); err != nil {
		if errors.Is(err, briefs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "brief not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load brief", nil)
		return
	}

	ctx := BackgroundWithRequestID(WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c)))
	go func() {
		defer func() {
			if r := recover(); r != nil {
				telemetry.Error("generation.run.panic", map[string]any{
					"brief_id": briefID,
					"panic":    r,
				})
			}
		}()
		if err := h.Svc.ProcessBrief(ctx, briefID); err != nil {
			telemetry.Error("generation.run.failed", map[string]any{
				"brief_id": briefID,
				"error":    sanitizeError(err),
			})
		}
	}()

	c.Set("briefId", briefID)
	respond.JSON(c, http.StatusAccepted, gin.H{"briefId": briefID, "status": "processing"})
}

type generateRequest struct {
	Model      string `json:"model"`
	TemplateID string `json:"templateId"`
}

// generateForBrief runs a single generation synchronously with optional
// model and template overrides, without touching the brief's status.
func (h *Handler) generateForBrief(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	item, err := h.Svc.GenerateForBrief(ctx, c.Param("id"), Options{
		Model:      req.Model,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		if errors.Is(err, briefs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "brief not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate content", nil)
		return
	}

	c.Set("briefId", item.BriefID)
	c.Set("contentId", item.ID)
	respond.JSON(c, http.StatusCreated, item)
}
