package templates

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"content-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the templates service.
type Handler struct {
	Svc         *Service
	Generations GenerationSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, generations GenerationSource) *Handler {
	return &Handler{Svc: svc, Generations: generations}
}

// RegisterRoutes attaches client-facing template routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.listTemplates)
	rg.GET("/templates/best", h.bestTemplate)
	rg.GET("/templates/:id", h.getTemplate)
}

// RegisterAdminRoutes attaches admin-only template routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/templates", h.createTemplate)
	rg.GET("/templates", h.listTemplates)
	rg.GET("/templates/analytics", h.templateAnalytics)
	rg.GET("/templates/:id", h.getTemplate)
	rg.PUT("/templates/:id", h.updateTemplate)
	rg.DELETE("/templates/:id", h.deleteTemplate)
	rg.POST("/templates/:id/render", h.renderTemplate)
}

type templateRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	SystemPrompt       string `json:"systemPrompt"`
	UserPromptTemplate string `json:"userPromptTemplate"`
	ContentType        string `json:"contentType"`
	Industry           string `json:"industry"`
}

func (h *Handler) createTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tpl, err := h.Svc.Create(c.Request.Context(), CreateParams{
		Name:               req.Name,
		Description:        req.Description,
		SystemPrompt:       req.SystemPrompt,
		UserPromptTemplate: req.UserPromptTemplate,
		ContentType:        req.ContentType,
		Industry:           req.Industry,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNameTaken):
			respond.Error(c, http.StatusConflict, "name_taken", "a template with this name already exists", nil)
		case strings.HasPrefix(err.Error(), "validation:"):
			respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create template", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, tpl)
}

func (h *Handler) getTemplate(c *gin.Context) {
	tpl, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch template", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, tpl)
}

func (h *Handler) listTemplates(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.Query("contentType"), c.Query("industry"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list templates", nil)
		return
	}
	if items == nil {
		items = []Template{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"templates": items, "count": len(items)})
}

func (h *Handler) bestTemplate(c *gin.Context) {
	contentType := c.Query("contentType")
	if contentType == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is required", nil)
		return
	}
	tpl, err := h.Svc.BestTemplate(c.Request.Context(), contentType, c.Query("industry"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no template matches this content type", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to pick template", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, tpl)
}

func (h *Handler) updateTemplate(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	params := UpdateParams{}
	if v, ok := req["name"]; ok {
		params.Name = &v
	}
	if v, ok := req["description"]; ok {
		params.Description = &v
	}
	if v, ok := req["systemPrompt"]; ok {
		params.SystemPrompt = &v
	}
	if v, ok := req["userPromptTemplate"]; ok {
		params.UserPromptTemplate = &v
	}
	if v, ok := req["contentType"]; ok {
		params.ContentType = &v
	}
	if v, ok := req["industry"]; ok {
		params.Industry = &v
	}

	tpl, err := h.Svc.Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
		case errors.Is(err, ErrNameTaken):
			respond.Error(c, http.StatusConflict, "name_taken", "a template with this name already exists", nil)
		case strings.HasPrefix(err.Error(), "validation:"):
			respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update template", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, tpl)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete template", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

type renderRequest struct {
	Params map[string]string `json:"params"`
}

func (h *Handler) renderTemplate(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tpl, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render template", nil)
		}
		return
	}
	rendered := Render(tpl, req.Params)
	respond.JSON(c, http.StatusOK, gin.H{
		"rendered": rendered,
		"missing":  MissingParams(tpl, req.Params),
	})
}

func (h *Handler) templateAnalytics(c *gin.Context) {
	if h.Generations == nil {
		respond.Error(c, http.StatusServiceUnavailable, "unavailable", "analytics source not configured", nil)
		return
	}
	analytics, err := ComputeAnalytics(c.Request.Context(), h.Generations)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, analytics)
}
