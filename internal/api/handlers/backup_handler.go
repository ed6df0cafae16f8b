package handlers

import (
	"net/http"

	"github.com/isdelr/quizmaster-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// BackupHandler handles HTTP requests related to backups.
type BackupHandler struct {
	service services.BackupServiceProvider
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service services.BackupServiceProvider) *BackupHandler {
	return &BackupHandler{service: service}
}

// GetAll lists the stored archives, newest first.
func (h *BackupHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	backups, err := h.service.ListBackups()
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, backups)
}

// Create archives the store immediately.
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	backup, err := h.service.CreateBackup(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	hlog.FromRequest(r).Info().Str("backup", backup.Name).Msg("Backup created on request")
	respondJSON(w, http.StatusCreated, backup)
}
