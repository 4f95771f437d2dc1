package experiments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-backend/internal/briefs"
	"content-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the experiments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches experiment routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/experiments", h.createExperiment)
	rg.GET("/experiments", h.listExperiments)
	rg.GET("/experiments/:id", h.getResults)
	rg.POST("/experiments/:id/winner", h.selectWinner)
}

type createRequest struct {
	BriefID  string        `json:"briefId"`
	Variants []VariantSpec `json:"variants"`
}

func (h *Handler) createExperiment(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.BriefID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "briefId is required", nil)
		return
	}

	exp, err := h.Svc.Create(c.Request.Context(), req.BriefID, req.Variants)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExperiment):
			respond.Error(c, http.StatusBadRequest, "validation_error", "at least 2 variants are required", nil)
		case errors.Is(err, briefs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "brief not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create experiment", nil)
		}
		return
	}
	c.Set("experimentId", exp.ID)
	c.Set("briefId", exp.BriefID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"testId":  exp.ID,
		"briefId": exp.BriefID,
		"status":  exp.Status,
	})
}

func (h *Handler) listExperiments(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.Query("briefId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list experiments", nil)
		return
	}
	if items == nil {
		items = []Experiment{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"experiments": items, "count": len(items)})
}

func (h *Handler) getResults(c *gin.Context) {
	results, err := h.Svc.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "experiment not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch experiment results", nil)
		}
		return
	}
	c.Set("experimentId", results.TestID)
	respond.JSON(c, http.StatusOK, results)
}

type winnerRequest struct {
	WinnerIndex *int           `json:"winnerIndex"`
	Metrics     map[string]any `json:"metrics"`
}

func (h *Handler) selectWinner(c *gin.Context) {
	var req winnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.WinnerIndex == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "winnerIndex is required", nil)
		return
	}

	selected, err := h.Svc.SelectWinner(c.Request.Context(), c.Param("id"), *req.WinnerIndex, req.Metrics)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "experiment not found", nil)
		case errors.Is(err, ErrInvalidIndex):
			respond.Error(c, http.StatusBadRequest, "validation_error", "winnerIndex is out of range", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to select winner", nil)
		}
		return
	}
	c.Set("experimentId", c.Param("id"))
	respond.JSON(c, http.StatusOK, gin.H{"selected": selected})
}
