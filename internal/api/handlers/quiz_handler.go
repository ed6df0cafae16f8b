package handlers

import (
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/services"
)

// QuizHandler handles quiz generation and results.
type QuizHandler struct {
	service services.QuizServiceProvider
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(service services.QuizServiceProvider) *QuizHandler {
	return &QuizHandler{service: service}
}

// SubmitResponse acknowledges a recorded quiz.
type SubmitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// GetQuiz generates a quiz on the requested topic.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		badRequest(w, "Missing topic parameter")
		return
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), topic, r.URL.Query().Get("user_id"))
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]models.QuestionRecord{"quiz": quiz})
}

// Submit records a completed quiz.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub services.Submission
	if !decodeJSON(w, r, &sub) {
		return
	}

	entry, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		respondError(w, r, err, "Missing required fields")
		return
	}
	respondJSON(w, http.StatusOK, SubmitResponse{Message: "Quiz result recorded successfully", ID: entry.ID})
}

// GetPerformance returns a user's attempts, optionally for one topic.
func (h *QuizHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "Missing user_id")
		return
	}

	entries, err := h.service.Performance(r.Context(), userID, r.URL.Query().Get("topic"))
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]models.QuizHistoryEntry{"performance": entries})
}

// GetHistory returns every attempt of a user.
func (h *QuizHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "Missing user_id")
		return
	}

	entries, err := h.service.History(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]models.QuizHistoryEntry{"history": entries})
}
