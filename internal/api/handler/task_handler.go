package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      *logger.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

func (h *TaskHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/{taskID}", h.GetTask)
	r.Patch("/{taskID}", h.UpdateTask)
	r.Delete("/{taskID}", h.DeleteTask)

	return r
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var in service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), id, &in)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, task, h.logger)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), id,
		queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tasks, h.logger)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id, taskID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, task, h.logger)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var patch domain.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, taskID, &patch)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, task, h.logger)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id, taskID); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
