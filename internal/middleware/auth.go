package middleware

import (
	"context"
	"net/http"

	"littlelemon-be/internal/auth"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/transport"
	"littlelemon-be/internal/user"
	"littlelemon-be/internal/utils"

	"go.uber.org/zap"
)

// UserFinder loads the token's user so roles are resolved from current
// group memberships, not from whatever was true at login.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// Auth resolves the caller of every request. Requests without a token pass
// through as anonymous; a token that fails verification is rejected.
func Auth(tokens *user.TokenIssuer, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromCtx(r.Context()).With(zap.String("layer", "middleware"))

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				log.Info("token rejected", zap.Error(err))
				utils.WriteJSONError(w, "Invalid token.", http.StatusUnauthorized)
				return
			}

			u, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				log.Error("failed to load token user", zap.Uint("user_id", claims.UserID), zap.Error(err))
				utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if u == nil {
				utils.WriteJSONError(w, "User not found.", http.StatusUnauthorized)
				return
			}

			caller := role.NewCaller(u.ID, u.Roles())

			ctx := utils.SetUserContext(r.Context(), u.ID, u.Username)
			ctx = logger.WithUserID(ctx, u.ID)
			ctx = transport.WithCaller(ctx, u, caller)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
