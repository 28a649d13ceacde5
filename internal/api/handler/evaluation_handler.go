package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/service"
)

type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	logger            *logger.Logger
}

func NewEvaluationHandler(evaluationService *service.EvaluationService, logger *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

func (h *EvaluationHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateEvaluation)
	r.Get("/my", h.ListMyEvaluations)
	r.Get("/average", h.AverageScore)

	return r
}

type createEvaluationRequest struct {
	TaskID int64 `json:"task_id"`
	Score  int   `json:"score"`
}

func (h *EvaluationHandler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req createEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	evaluation, err := h.evaluationService.CreateEvaluation(r.Context(), id, req.TaskID, req.Score)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, evaluation, h.logger)
}

func (h *EvaluationHandler) ListMyEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	evaluations, err := h.evaluationService.ListMyEvaluations(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, evaluations, h.logger)
}

func (h *EvaluationHandler) AverageScore(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	avg, err := h.evaluationService.AverageScore(r.Context(), id, period)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, avg, h.logger)
}
