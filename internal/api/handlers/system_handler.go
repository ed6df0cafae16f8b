package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/inference"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/rs/zerolog/hlog"
)

// SystemHandler serves liveness and connectivity checks.
type SystemHandler struct {
	llm inference.Client
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(llm inference.Client) *SystemHandler {
	return &SystemHandler{llm: llm}
}

// VerifyResponse reports inference endpoint connectivity.
type VerifyResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	models.InferenceStatus
}

// Test is a fixed smoke-test endpoint.
func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"quiz": "test"})
}

// Health reports that the process is serving.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// VerifyAPI checks that the inference endpoint is reachable and lists its
// models.
func (h *SystemHandler) VerifyAPI(w http.ResponseWriter, r *http.Request) {
	status, err := inference.Verify(r.Context(), h.llm)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Inference endpoint check failed")
		var serr *inference.StatusError
		if errors.As(err, &serr) {
			respondJSON(w, http.StatusInternalServerError, errorBody{
				Error:   fmt.Sprintf("Inference API request failed: %d", serr.StatusCode),
				Message: serr.Body,
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, VerifyResponse{
		Status:          http.StatusOK,
		Message:         "Successfully connected to the inference API",
		InferenceStatus: status,
	})
}
