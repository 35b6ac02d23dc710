package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"social-service/internal/services"
	"social-service/internal/utils"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *services.TokenService
}

func NewAuthMiddleware(tokens *services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// RequireAuth accepts "Authorization: Bearer <access token>" and stores the caller's
// id and email in the gin context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", "authorization header is required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", "authorization header must use the Bearer scheme")
			return
		}

		claims, err := am.tokens.Parse(strings.TrimSpace(tokenString), services.TokenTypeAccess)
		if err != nil {
			slog.Debug("Rejected access token", "error", err, "path", c.Request.URL.Path)
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", "invalid or expired token")
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextEmail, claims.Email)
		c.Next()
	}
}
