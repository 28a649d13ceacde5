package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/teamly/teamly/internal/auth"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate validates the bearer token and loads the user behind it
// fresh from storage, so role and team changes apply immediately. The
// resulting Identity is placed on the request context for handlers.
func Authenticate(tokens *auth.TokenManager, users repository.UserRepository, logger *logger.Logger) func(next http.Handler) http.Handler {
	log := logger.Component("middleware/auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeErrorEnvelope(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
				return
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				log.Warn("token rejected", "error", err)
				writeErrorEnvelope(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeErrorEnvelope(w, http.StatusUnauthorized, "UNAUTHENTICATED", "unknown user")
				return
			}

			if !user.IsActive {
				writeErrorEnvelope(w, http.StatusForbidden, "USER_INACTIVE", "user is inactive")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, domain.IdentityOf(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the authenticated identity stored by
// Authenticate, or nil for unauthenticated requests.
func IdentityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityKey).(*domain.Identity)
	return identity
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}
