package middleware

import (
	"context"
	"errors"
	"myflix_api/internal/common"
	"myflix_api/internal/common/security"
	"myflix_api/internal/domain/model"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

type contextKey string

const UserCtxKey contextKey = "user"

// UserFinder resolves a token subject to a stored user.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Authenticator rejects the request with 401 unless jwtauth.Verifier found a
// valid token whose subject names an existing user. The user is stored in
// the request context for the handlers behind it.
func Authenticator(users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				logger.Debug("rejected token", zap.Error(err), zap.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			username, err := security.GetUsernameFromClaims(claims)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.FindByUsername(r.Context(), username)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					unauthorized(w)
					return
				}
				logger.Error("failed to resolve token subject", zap.String("username", username), zap.Error(err))
				common.RespondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
}

// Helper to get the authenticated user from context
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
