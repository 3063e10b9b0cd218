package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type PaymentHandler struct {
	gateway services.PaymentGateway
	logger  *zap.Logger
}

func NewPaymentHandler(gateway services.PaymentGateway, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, logger: logger}
}

// CreateIntent asks the gateway for a payment handle. Gateway failures are a
// 502: the upstream is down, not us.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Amount must be positive"))
		return
	}

	intent, err := h.gateway.CreatePaymentIntent(r.Context(), req.Amount, "usd")
	if err != nil {
		h.logger.Warn("payment intent creation failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Payment gateway unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.PaymentIntentResponse{ClientSecret: intent.ClientSecret}))
}
