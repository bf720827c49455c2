package notes

import (
	"encoding/json"
	"net/http"

	"github.com/mayurhingaladiya/csboost-fyp/internal/middleware"
	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Advance saves the user's reading position and pays the page reward when
// this page has not been read before.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.AdvanceNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SubtopicID <= 0 || req.Page < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Subtopic and page are required"})
		return
	}

	resp, err := h.service.AdvanceNotes(userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save notes progress"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProgress lists the session user's reading positions.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	progress, err := h.service.Progress(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load notes progress"})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
