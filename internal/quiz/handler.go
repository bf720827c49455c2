package quiz

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mayurhingaladiya/csboost-fyp/internal/middleware"
	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.Topics()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load topics"})
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *Handler) GetSubtopics(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid topic id"})
		return
	}

	subtopics, err := h.service.Subtopics(topicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load subtopics"})
		return
	}
	writeJSON(w, http.StatusOK, subtopics)
}

// StartQuiz returns a subtopic's questions plus the bonus-question roll and
// countdown parameters for this attempt.
func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	subtopicID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subtopic id"})
		return
	}

	resp, err := h.service.StartQuiz(subtopicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start quiz"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompleteQuiz scores a finished attempt and returns the rewards earned.
func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SubtopicID <= 0 || len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Subtopic and answers are required"})
		return
	}

	resp, err := h.service.CompleteQuiz(userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit quiz results"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// StartMockTest deals the timed mock test pool.
func (h *Handler) StartMockTest(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.StartMockTest()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RollBonus reports whether the next question should carry the timed bonus,
// given the caller's current in-quiz answer streak.
func (h *Handler) RollBonus(w http.ResponseWriter, r *http.Request) {
	streak, err := strconv.Atoi(r.URL.Query().Get("streak"))
	if err != nil || streak < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid streak value"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"bonus": h.service.RollBonus(streak)})
}

// GetDailyQuestions samples today's question set for the session user.
func (h *Handler) GetDailyQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	questions, err := h.service.DailyQuestions(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// GetProgress lists the session user's per-subtopic quiz results.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	progress, err := h.service.Progress(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
