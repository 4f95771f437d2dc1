package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-backend/internal/briefs"
	"content-backend/internal/generation"
	"content-backend/internal/shared/server/middleware"
	"content-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the payments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches payment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.confirmPayment)
}

type confirmRequest struct {
	BriefID         string `json:"briefId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (h *Handler) confirmPayment(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.BriefID == "" || req.PaymentIntentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "briefId and paymentIntentId are required", nil)
		return
	}

	ctx := generation.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	payment, err := h.Svc.Confirm(ctx, req.BriefID, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentFailed):
			respond.Error(c, http.StatusPaymentRequired, "payment_failed", "payment was not successful", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "payment intent not found for this brief", nil)
		case errors.Is(err, briefs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "brief not found", nil)
		case errors.Is(err, briefs.ErrStatusRegression):
			respond.Error(c, http.StatusConflict, "invalid_transition", "brief already progressed past payment", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process payment", nil)
		}
		return
	}
	c.Set("briefId", req.BriefID)
	c.Set("statusTransition", "pending->paid")
	respond.JSON(c, http.StatusOK, gin.H{
		"status":    "succeeded",
		"briefId":   req.BriefID,
		"paymentId": payment.ID,
	})
}
