package middleware

import (
	"context"
	"net/http"
	"strings"

	"lodging-backend/services"
	"lodging-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CallerContextKey is the key the authenticated caller is stored under in gin context
const CallerContextKey = "caller"

// PropertyScope resolves which properties an admin manages.
type PropertyScope interface {
	CallerFor(ctx context.Context, adminID uint, username string) (services.Caller, error)
}

// AuthMiddleware validates the bearer token and loads the caller's managed properties
func AuthMiddleware(jwtService *utils.JWTService, scope PropertyScope, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.WithFields(logrus.Fields{"path": c.Request.URL.Path, "ip": c.ClientIP()}).
				Warn("AUTH FAILED: missing authorization header")
			utils.JSONError(c, http.StatusUnauthorized, "error.missingAuthHeader", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidAuthFormat", "Expected: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if utils.IsTokenExpired(err) {
				utils.JSONError(c, http.StatusUnauthorized, "error.tokenExpired", "Access token has expired")
				return
			}
			log.WithFields(logrus.Fields{"path": c.Request.URL.Path, "ip": c.ClientIP(), "error": err}).
				Warn("AUTH FAILED: invalid token")
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "Invalid access token")
			return
		}

		caller, err := scope.CallerFor(c.Request.Context(), claims.AdminID, claims.Username)
		if err != nil {
			log.WithError(err).WithField("admin_id", claims.AdminID).Error("❌ failed to load managed properties")
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to load permissions")
			return
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// GetCaller returns the caller set by AuthMiddleware
func GetCaller(c *gin.Context) (services.Caller, bool) {
	v, ok := c.Get(CallerContextKey)
	if !ok {
		return services.Caller{}, false
	}
	caller, ok := v.(services.Caller)
	return caller, ok
}
