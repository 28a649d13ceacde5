package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/service"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
	logger          *logger.Logger
}

func NewCalendarHandler(calendarService *service.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

func (h *CalendarHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/day", h.Day)
	r.Get("/month", h.Month)

	return r
}

func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	schedule, err := h.calendarService.Day(r.Context(), id, date)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, schedule, h.logger)
}

func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	now := time.Now()
	month := queryInt(r, "month", int(now.Month()))
	year := queryInt(r, "year", now.Year())

	schedule, err := h.calendarService.Month(r.Context(), id, month, year)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, schedule, h.logger)
}
