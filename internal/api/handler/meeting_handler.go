package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/service"
)

type MeetingHandler struct {
	meetingService *service.MeetingService
	logger         *logger.Logger
}

func NewMeetingHandler(meetingService *service.MeetingService, logger *logger.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
		logger:         logger,
	}
}

func (h *MeetingHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateMeeting)
	r.Get("/", h.ListMeetings)
	r.Delete("/{meetingID}", h.DeleteMeeting)

	return r
}

func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var in service.CreateMeetingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	meeting, err := h.meetingService.CreateMeeting(r.Context(), id, &in)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, meeting, h.logger)
}

func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	meetings, err := h.meetingService.ListMeetings(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, meetings, h.logger)
}

func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	meetingID, err := pathID(r, "meetingID")
	if err != nil {
		http.Error(w, "invalid meeting id", http.StatusBadRequest)
		return
	}

	if err := h.meetingService.DeleteMeeting(r.Context(), id, meetingID); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
