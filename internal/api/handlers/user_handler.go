package handlers

import (
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// UserHandler handles HTTP requests for accounts and profiles.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InterestsPayload defines the structure for interest updates.
type InterestsPayload struct {
	UserID    string   `json:"user_id"`
	Interests []string `json:"interests"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload services.RegisterRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Username == "" || payload.Password == "" {
		badRequest(w, "Missing required fields")
		return
	}

	if err := h.service.Register(r.Context(), payload); err != nil {
		respondError(w, r, err, "Username already exists")
		return
	}
	respondMessage(w, http.StatusCreated, "Registration successful")
}

// Login handles user authentication and token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Username == "" || payload.Password == "" {
		badRequest(w, "Missing username or password")
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, r, err, "Invalid username or password")
		return
	}
	respondJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", User: user, Token: token})
}

// UpdateInterests replaces the interests of a user.
func (h *UserHandler) UpdateInterests(w http.ResponseWriter, r *http.Request) {
	var payload InterestsPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.UserID == "" {
		badRequest(w, "Missing user_id")
		return
	}

	if err := h.service.UpdateInterests(r.Context(), payload.UserID, payload.Interests); err != nil {
		respondError(w, r, err, "")
		return
	}
	respondMessage(w, http.StatusOK, "Interests updated successfully")
}

// Profile returns a user's account data and quiz statistics.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "Missing user_id parameter")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]models.Profile{"profile": profile})
}

// GetMe returns the user named by the request's token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		hlog.FromRequest(r).Error().Msg("Could not retrieve user claims from context")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "Could not retrieve user from token"})
		return
	}

	user, err := h.service.Me(r.Context(), claims.Username)
	if err != nil {
		respondError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]models.PublicUser{"user": user})
}
