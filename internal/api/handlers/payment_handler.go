package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/quizmaster-be/internal/services"
)

// PaymentHandler prepares payment sheets.
type PaymentHandler struct {
	service services.PaymentServiceProvider
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service services.PaymentServiceProvider) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePaymentIntent reads the form field amount, in whole currency units.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if err != nil {
		badRequest(w, "Amount is required")
		return
	}

	sheet, err := h.service.CreatePaymentSheet(r.Context(), amount)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, sheet)
}
