package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"trip-booking/internal/data/entity"
	"trip-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth verifies the HS256 bearer token issued by the auth service and puts the
// caller's id and role on the request context.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("Rejected bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			claims, _ := token.Claims.(jwt.MapClaims)
			userID, role, err := identity(claims)
			if err != nil {
				logger.Warn("Token without usable identity", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, string(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identity reads the user id from "sub" (or "userId") and the role claim.
// Tokens without a role belong to travelers.
func identity(claims jwt.MapClaims) (uuid.UUID, entity.UserRole, error) {
	if claims == nil {
		return uuid.Nil, "", errors.New("no claims")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		subject, _ = claims["userId"].(string)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("subject %q: %w", subject, err)
	}

	role := entity.RoleTraveler
	if v, ok := claims["role"].(string); ok && v != "" {
		role = entity.UserRole(strings.ToLower(v))
	}
	if !role.Valid() {
		return uuid.Nil, "", fmt.Errorf("unknown role %q", role)
	}

	return userID, role, nil
}

// RequireRole lets the request through only for the given roles. Must run after Auth.
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !slices.Contains(roles, entity.UserRole(role)) {
				logger.Warn("Role check: access denied",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "You do not have access to this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
