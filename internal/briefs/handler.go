package briefs

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"content-backend/internal/clients"
	"content-backend/internal/shared/server/respond"
)

// PaymentOpener opens a payment intent for a freshly submitted brief.
// Implemented by the payments service.
type PaymentOpener interface {
	OpenIntent(ctx context.Context, clientID, briefID string, amount float64) (paymentID, providerRef string, err error)
}

// Handler wires HTTP handlers to the briefs service.
type Handler struct {
	Svc      *Service
	Clients  *clients.Service
	Payments PaymentOpener
	Price    float64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, clientSvc *clients.Service, payments PaymentOpener, price float64) *Handler {
	return &Handler{Svc: svc, Clients: clientSvc, Payments: payments, Price: price}
}

// RegisterRoutes attaches the public submission route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/briefs", h.submitBrief)
	rg.GET("/briefs/:id", h.getBrief)
}

// RegisterAdminRoutes attaches admin-only brief routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/briefs", h.listBriefs)
	rg.GET("/briefs/:id", h.getBrief)
}

type submitRequest struct {
	ClientName     string `json:"clientName"`
	ClientEmail    string `json:"clientEmail"`
	BriefText      string `json:"briefText"`
	Topic          string `json:"topic"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"targetAudience"`
	WordCount      int    `json:"wordCount"`
	BudgetTier     string `json:"budgetTier"`
	Industry       string `json:"industry"`
	ContentType    string `json:"contentType"`
}

func (h *Handler) submitBrief(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.ClientEmail) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "client email is required", []map[string]string{
			{"field": "clientEmail", "issue": "required"},
		})
		return
	}
	if strings.TrimSpace(req.BriefText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "brief text is required", []map[string]string{
			{"field": "briefText", "issue": "required"},
		})
		return
	}

	ctx := c.Request.Context()
	client, err := h.Clients.GetOrCreate(ctx, req.ClientEmail, req.ClientName)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register client", nil)
		return
	}

	brief, err := h.Svc.Submit(ctx, SubmitParams{
		ClientID:       client.ID,
		BriefText:      req.BriefText,
		Topic:          req.Topic,
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
		WordCount:      req.WordCount,
		BudgetTier:     req.BudgetTier,
		Industry:       req.Industry,
		ContentType:    req.ContentType,
	})
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation:") {
			respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit brief", nil)
		return
	}
	c.Set("briefId", brief.ID)

	paymentID, providerRef, err := h.Payments.OpenIntent(ctx, client.ID, brief.ID, h.Price)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "payment_error", "failed to open payment intent", nil)
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"briefId":     brief.ID,
		"clientId":    client.ID,
		"status":      brief.Status,
		"paymentId":   paymentID,
		"providerRef": providerRef,
		"amount":      h.Price,
	})
}

func (h *Handler) getBrief(c *gin.Context) {
	briefID := c.Param("id")
	if briefID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "brief id is required", nil)
		return
	}
	brief, err := h.Svc.Get(c.Request.Context(), briefID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "brief not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch brief", nil)
		}
		return
	}
	c.Set("briefId", brief.ID)
	respond.JSON(c, http.StatusOK, brief)
}

func (h *Handler) listBriefs(c *gin.Context) {
	status := c.Query("status")
	limit := parseIntDefault(c.Query("limit"), 50)
	offset := parseIntDefault(c.Query("offset"), 0)

	items, err := h.Svc.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list briefs", nil)
		return
	}
	if items == nil {
		items = []Brief{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"briefs": items, "count": len(items)})
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
