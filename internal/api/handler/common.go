package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/teamly/teamly/internal/api/middleware"
	"github.com/teamly/teamly/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body any, logger interface{ Error(string, ...any) }) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// identity pulls the authenticated principal off the request context.
// Routes behind the auth middleware always have one; the nil branch is
// a guard against misrouted handlers.
func identity(r *http.Request) (*domain.Identity, error) {
	id := middleware.IdentityFrom(r.Context())
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
