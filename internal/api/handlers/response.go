package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Error       string `json:"error"`
	Message     string `json:"message,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Client errors carry
// clientMsg when it is set; server errors carry the error text and are
// logged.
func respondError(w http.ResponseWriter, r *http.Request, err error, clientMsg string) {
	var perr *services.ParseError
	if errors.As(err, &perr) {
		hlog.FromRequest(r).Warn().Int("raw_len", len(perr.Raw)).Msg("Generated quiz could not be parsed")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: perr.Error(), RawResponse: perr.Raw})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	msg := clientMsg
	if msg == "" {
		msg = err.Error()
	}
	respondJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "Invalid request body")
		return false
	}
	return true
}
