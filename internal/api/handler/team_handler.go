package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/service"
)

type TeamHandler struct {
	teamService *service.TeamService
	logger      *logger.Logger
}

func NewTeamHandler(teamService *service.TeamService, logger *logger.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      logger,
	}
}

func (h *TeamHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateTeam)
	r.Post("/join", h.JoinTeam)

	return r
}

type createTeamRequest struct {
	Name string `json:"name"`
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, team, h.logger)
}

type joinTeamRequest struct {
	TeamCode string `json:"team_code"`
}

func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req joinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.JoinTeam(r.Context(), id, req.TeamCode)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, team, h.logger)
}
