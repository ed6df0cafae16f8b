package handlers

import (
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/services"
)

// TopicHandler serves topic suggestions.
type TopicHandler struct {
	service services.TopicServiceProvider
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(service services.TopicServiceProvider) *TopicHandler {
	return &TopicHandler{service: service}
}

// GetAvailable suggests topics from the user's interests.
func (h *TopicHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "Missing user_id parameter")
		return
	}

	topics, err := h.service.Available(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

// GetPending suggests topics the user has not completed yet.
func (h *TopicHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "Missing user_id parameter")
		return
	}

	topics, err := h.service.Pending(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"pending_topics": topics})
}
