package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"warehouse-be/internal/auth"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/user"
	"warehouse-be/internal/utils"

	"go.uber.org/zap"
)

// IdentityResolver maps the identity claimed by a token to the caller as
// currently stored.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, claimed user.Identity) (user.Identity, error)
}

// Authenticate attaches the identity behind a valid access token to the
// request context. Requests without a usable token, or whose user no longer
// exists, continue anonymously.
func Authenticate(secret string, users IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromCtx(r.Context())
			claims, err := user.ParseJWT(secret, tokenStr)
			if err != nil {
				log.Debug("rejected access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			id, err := users.ResolveIdentity(r.Context(), claims.Identity())
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Info("access token of a removed user", zap.Int64("token_user_id", claims.UserID))
				} else {
					log.Error("failed to resolve token identity", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), id.UserID, id.Login, string(id.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only authenticated callers holding one of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := user.Role(utils.GetUserRoleFromContext(r.Context()))
			if role == "" {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !slices.Contains(roles, role) {
				logger.FromCtx(r.Context()).Info("role not allowed",
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				utils.WriteJSONError(w, "operation not allowed for role "+string(role), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
